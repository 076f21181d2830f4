package pages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jvsales/faultctl/internal/delivery"
	"github.com/jvsales/faultctl/internal/record"
)

// fakeDispatcher records what the entry page hands to the sink and
// answers Online from a fixed flag.
type fakeDispatcher struct {
	online    bool
	delivered []record.FaultRecord
	result    delivery.Result
}

func (f *fakeDispatcher) Online() bool { return f.online }

func (f *fakeDispatcher) DeliverCmd(r record.FaultRecord) tea.Cmd {
	f.delivered = append(f.delivered, r)
	res := f.result
	return func() tea.Msg {
		return delivery.ResultMsg{RecordID: r.ID, Result: res}
	}
}

// fakeSweeper counts sweep requests.
type fakeSweeper struct {
	calls     int
	attempted int
}

func (f *fakeSweeper) SweepCmd() tea.Cmd {
	f.calls++
	attempted := f.attempted
	return func() tea.Msg {
		return delivery.SweepCompletedMsg{Attempted: attempted}
	}
}
