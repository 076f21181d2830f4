package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jvsales/faultctl/internal/delivery"
	"github.com/jvsales/faultctl/internal/record"
	"github.com/jvsales/faultctl/internal/session"
	"github.com/jvsales/faultctl/internal/ui"
)

type FocusArea int

const (
	FocusSidebar FocusArea = iota
	FocusContent
)

// Connectivity is the app's view of the link monitor.
type Connectivity interface {
	Online() bool
	WaitCmd() tea.Cmd
}

// Sweeper triggers a retry pass over failed records.
type Sweeper interface {
	SweepCmd() tea.Cmd
}

type bannerKind int

const (
	bannerNone bannerKind = iota
	bannerInfo
	bannerSuccess
	bannerError
)

// bannerClearMsg expires a transient delivery banner. The sequence number
// keeps an old timer from wiping a newer banner.
type bannerClearMsg struct {
	seq int
}

type Model struct {
	login      Page
	pages      map[PageID]Page
	activePage PageID
	focus      FocusArea
	width      int
	height     int

	sessions *session.Manager
	list     *record.List
	conn     Connectivity
	sweeper  Sweeper

	banner     string
	bannerKind bannerKind
	bannerSeq  int
	sweeping   bool
}

func New(login Page, pages map[PageID]Page, sessions *session.Manager, list *record.List, conn Connectivity, sweeper Sweeper) Model {
	return Model{
		login:    login,
		pages:    pages,
		sessions: sessions,
		list:     list,
		conn:     conn,
		sweeper:  sweeper,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.conn.WaitCmd()}
	if cmd := m.login.Init(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	for _, p := range m.pages {
		if cmd := p.Init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentWidth := m.width - sidebarWidth
		contentHeight := m.height - 3 // identity bar + banner line + status bar
		m.login.SetSize(m.width, m.height)
		for _, p := range m.pages {
			p.SetSize(contentWidth, contentHeight)
		}
		return m, nil

	case SessionStartedMsg:
		m.activePage = EntryPage
		m.focus = FocusContent
		return m, nil

	case delivery.ResultMsg:
		// The pipeline owns delivery status; the result of the
		// submit-time attempt is applied here, on the event loop.
		if msg.Result.Success {
			m.list.SetDelivery(msg.RecordID, record.StatusSuccess, "")
			return m.showBanner("Enviado com sucesso para o Power BI!", bannerSuccess, 3*time.Second)
		}
		m.list.SetDelivery(msg.RecordID, record.StatusFailed, msg.Result.Err)
		return m.showBanner("Erro no envio: "+msg.Result.Err, bannerError, 5*time.Second)

	case delivery.ConnectivityMsg:
		// Always re-arm the waiter; an offline→online transition is the
		// automatic trigger for the retry sweep.
		cmds := []tea.Cmd{m.conn.WaitCmd()}
		if msg.Online && m.list.Count(record.StatusFailed) > 0 && !m.sweeping {
			m.sweeping = true
			m.setBanner("Conexão restabelecida. Reenviando registros...", bannerInfo)
			cmds = append(cmds, m.sweeper.SweepCmd())
		} else if !msg.Online {
			m.setBanner(delivery.ErrNoConnectivity, bannerError)
		}
		return m, tea.Batch(cmds...)

	case delivery.SweepCompletedMsg:
		m.sweeping = false
		var bannerCmd tea.Cmd
		if msg.Attempted > 0 {
			if failed := m.list.Count(record.StatusFailed); failed > 0 {
				m, bannerCmd = m.showBanner(fmt.Sprintf("Reenvio concluído: %d registro(s) ainda com falha.", failed), bannerError, 5*time.Second)
			} else {
				m, bannerCmd = m.showBanner("Reenvio concluído: todos os registros enviados.", bannerSuccess, 3*time.Second)
			}
		}
		next, pageCmd := m.forwardToPages(msg)
		return next, tea.Batch(bannerCmd, pageCmd)

	case bannerClearMsg:
		if msg.seq == m.bannerSeq {
			m.banner = ""
			m.bannerKind = bannerNone
		}
		return m, nil

	case tea.KeyMsg:
		// Logged out: the login form captures everything except ctrl+c.
		if !m.sessions.LoggedIn() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.login, cmd = m.login.Update(msg)
			return m, cmd
		}

		// When a page has an active text input, forward all keys
		// directly to the page — only ctrl+c still quits.
		if m.focus == FocusContent {
			if ic, ok := m.pages[m.activePage].(InputCapturer); ok && ic.InputCaptured() {
				if msg.String() == "ctrl+c" {
					return m, tea.Quit
				}
				page := m.pages[m.activePage]
				newPage, cmd := page.Update(msg)
				m.pages[m.activePage] = newPage
				return m, cmd
			}
		}

		// Global key handling
		switch {
		case key.Matches(msg, GlobalKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, GlobalKeys.Logout):
			m.sessions.Logout()
			if r, ok := m.login.(Resetter); ok {
				r.Reset()
			}
			m.activePage = EntryPage
			m.focus = FocusSidebar
			return m, nil
		case key.Matches(msg, GlobalKeys.ToggleFocus):
			if m.focus == FocusSidebar {
				m.focus = FocusContent
				return m, nil
			}
			// When content focused, fall through to page handler
		}

		// Handle arrow keys based on focus
		if m.focus == FocusSidebar {
			switch msg.String() {
			case "up":
				m.prevPage()
				return m, nil
			case "down":
				m.nextPage()
				return m, nil
			case "enter", "right":
				m.focus = FocusContent
				return m, nil
			}
		} else if m.focus == FocusContent {
			if msg.String() == "left" {
				m.focus = FocusSidebar
				return m, nil
			}
		}
	}

	// Key messages: only forward to active page when content is focused
	if _, isKey := msg.(tea.KeyMsg); isKey {
		if m.focus != FocusContent {
			return m, nil
		}
		page := m.pages[m.activePage]
		newPage, cmd := page.Update(msg)
		m.pages[m.activePage] = newPage
		return m, cmd
	}

	// Non-key messages (command results, ticks): forward to all pages
	// so responses reach the page that initiated the command
	return m.forwardToPages(msg)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Carregando..."
	}

	if !m.sessions.LoggedIn() {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.login.View(),
		)
	}

	contentWidth := m.width - sidebarWidth
	contentHeight := m.height - 3

	page := m.pages[m.activePage]

	identityBar := renderIdentityBar(m.sessions.Active(), m.conn.Online(), m.width)
	bannerLine := renderBanner(m.banner, m.bannerKind, m.list.Count(record.StatusFailed), m.width)
	sidebar := renderSidebar(PageOrder, m.activePage, m.pages, contentHeight, m.focus == FocusSidebar)
	content := ui.ContentStyle.
		Width(contentWidth).
		Height(contentHeight).
		Render(page.View())

	statusBar := renderStatusBar(page.ShortHelp(), m.width, m.focus)

	return renderLayout(identityBar, bannerLine, sidebar, content, statusBar)
}

func (m Model) showBanner(text string, kind bannerKind, ttl time.Duration) (Model, tea.Cmd) {
	m.setBanner(text, kind)
	seq := m.bannerSeq
	return m, tea.Tick(ttl, func(time.Time) tea.Msg {
		return bannerClearMsg{seq: seq}
	})
}

func (m *Model) setBanner(text string, kind bannerKind) {
	m.banner = text
	m.bannerKind = kind
	m.bannerSeq++
}

func (m Model) forwardToPages(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for id, page := range m.pages {
		newPage, cmd := page.Update(msg)
		m.pages[id] = newPage
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) nextPage() {
	for i, id := range PageOrder {
		if id == m.activePage {
			m.activePage = PageOrder[(i+1)%len(PageOrder)]
			return
		}
	}
}

func (m *Model) prevPage() {
	for i, id := range PageOrder {
		if id == m.activePage {
			m.activePage = PageOrder[(i-1+len(PageOrder))%len(PageOrder)]
			return
		}
	}
}
