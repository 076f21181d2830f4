package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// PageID identifies each page in the application.
type PageID int

const (
	EntryPage PageID = iota
	RecordsPage
	SettingsPage
)

var PageOrder = []PageID{
	EntryPage,
	RecordsPage,
	SettingsPage,
}

// Page is the interface every page in the application implements.
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Page, tea.Cmd)
	View() string
	Name() string
	ShortHelp() []key.Binding
	SetSize(width, height int)
}

// InputCapturer is an optional interface for pages with text inputs.
// When InputCaptured returns true, the app forwards all keys directly
// to the page instead of processing shortcuts like q, ?, left, etc.
type InputCapturer interface {
	InputCaptured() bool
}

// Resetter is an optional interface for pages that can clear their
// input state, used when the operator logs out.
type Resetter interface {
	Reset()
}

// SessionStartedMsg is sent when a login succeeds.
type SessionStartedMsg struct{}
