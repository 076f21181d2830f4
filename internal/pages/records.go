package pages

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/jvsales/faultctl/internal/app"
	"github.com/jvsales/faultctl/internal/delivery"
	"github.com/jvsales/faultctl/internal/export"
	"github.com/jvsales/faultctl/internal/record"
	"github.com/jvsales/faultctl/internal/session"
	"github.com/jvsales/faultctl/internal/ui"
)

// Sweeper re-attempts delivery of every failed record.
type Sweeper interface {
	SweepCmd() tea.Cmd
}

// RecordsPage lists the records of the current run with their delivery
// status, and exports them to CSV or the analytics JSON document.
type RecordsPage struct {
	viewport viewport.Model

	list     *record.List
	store    *export.Store
	sessions *session.Manager
	sweeper  Sweeper

	sweeping bool
	message  string

	width, height int
}

func NewRecordsPage(list *record.List, store *export.Store, sessions *session.Manager, sweeper Sweeper) *RecordsPage {
	return &RecordsPage{
		viewport: viewport.New(0, 0),
		list:     list,
		store:    store,
		sessions: sessions,
		sweeper:  sweeper,
	}
}

func (p *RecordsPage) Init() tea.Cmd {
	return nil
}

func (p *RecordsPage) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case delivery.SweepCompletedMsg:
		p.sweeping = false
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if p.sweeping {
				return p, nil
			}
			if p.list.Count(record.StatusFailed) == 0 {
				p.message = "Nenhum registro com falha de envio."
				return p, nil
			}
			p.sweeping = true
			p.message = "Reenviando registros com falha..."
			return p, p.sweeper.SweepCmd()
		case "e":
			p.exportCSV()
			return p, nil
		case "p":
			p.exportAnalytics()
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *RecordsPage) exportCSV() {
	records := p.list.Records()
	if len(records) == 0 {
		p.message = "Nenhum registro para exportar."
		return
	}
	path, err := p.store.SaveCSV(records)
	if err != nil {
		p.message = fmt.Sprintf("Erro ao exportar CSV: %v", err)
		return
	}
	p.message = "CSV exportado: " + path
}

func (p *RecordsPage) exportAnalytics() {
	records := p.list.Records()
	if len(records) == 0 {
		p.message = "Nenhum registro para exportar."
		return
	}
	exportedBy := ""
	if s := p.sessions.Active(); s != nil {
		exportedBy = s.OperatorName
	}
	path, err := p.store.SaveAnalytics(records, exportedBy)
	if err != nil {
		p.message = fmt.Sprintf("Erro ao exportar JSON: %v", err)
		return
	}
	p.message = "JSON exportado: " + path
}

func (p *RecordsPage) View() string {
	var b strings.Builder
	b.WriteString(ui.Title("Registros do Turno"))
	b.WriteString("\n")

	records := p.list.Records()
	success := p.list.Count(record.StatusSuccess)
	failed := p.list.Count(record.StatusFailed)
	pending := p.list.Count(record.StatusPending)

	counters := fmt.Sprintf("%d registro(s)  •  %s  %s  %s",
		len(records),
		ui.SuccessBadge(fmt.Sprintf("%d enviados", success)),
		ui.ErrorBadge(fmt.Sprintf("%d com falha", failed)),
		ui.WarningBadge(fmt.Sprintf("%d pendentes", pending)),
	)
	b.WriteString(counters)
	b.WriteString("\n")

	if p.message != "" {
		b.WriteString(ui.DimStyle.Render(p.message))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(records) == 0 {
		b.WriteString(ui.DimStyle.Render("Nenhuma falha registrada neste turno."))
		return b.String()
	}

	p.viewport.Width = maxInt(20, p.width-2)
	p.viewport.Height = maxInt(3, p.height-7)
	p.viewport.SetContent(p.renderRows(records, p.viewport.Width))
	b.WriteString(p.viewport.View())

	return b.String()
}

// renderRows draws one line per record, newest last.
func (p *RecordsPage) renderRows(records []record.FaultRecord, width int) string {
	var b strings.Builder
	for _, r := range records {
		badge := ui.WarningBadge("PENDENTE")
		switch r.DeliveryStatus {
		case record.StatusSuccess:
			badge = ui.SuccessBadge("ENVIADO")
		case record.StatusFailed:
			badge = ui.ErrorBadge("FALHOU")
		}
		line := fmt.Sprintf("%s %s  %s  %s  %s min  robô %s",
			r.Date, r.Time, badge, r.Fault, r.Downtime, r.RobotNumber)
		if r.DeliveryStatus == record.StatusFailed && r.DeliveryError != "" {
			line += "  " + ui.ErrorStyle.Render(r.DeliveryError)
		}
		b.WriteString(truncate.String(line, uint(width)))
		b.WriteString("\n")
	}
	return b.String()
}

func (p *RecordsPage) Name() string { return "Registros" }

func (p *RecordsPage) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reenviar falhas")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "exportar CSV")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "exportar JSON")),
		key.NewBinding(key.WithKeys("↑/↓"), key.WithHelp("↑/↓", "rolar")),
	}
}

func (p *RecordsPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}
