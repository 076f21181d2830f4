package pages

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/jvsales/faultctl/internal/app"
	"github.com/jvsales/faultctl/internal/catalog"
	"github.com/jvsales/faultctl/internal/delivery"
	"github.com/jvsales/faultctl/internal/record"
	"github.com/jvsales/faultctl/internal/session"
	"github.com/jvsales/faultctl/internal/ui"
)

type entryField int

const (
	fieldDate entryField = iota
	fieldTime
	fieldFault
	fieldDowntime
	fieldManualBoxes
	fieldRobot
	fieldCuba
	fieldProduct
	fieldObservations
	entryFieldCount
)

const entryLabelWidth = 22

// Dispatcher is the entry page's view of the delivery pipeline: it
// reports link state and hands a finished record to the sink.
type Dispatcher interface {
	Online() bool
	DeliverCmd(r record.FaultRecord) tea.Cmd
}

// clockTickMsg refreshes the pre-filled date and time once a minute.
type clockTickMsg struct{}

// EntryPage is the fault entry form. Date and time come pre-filled
// from the wall clock and keep tracking it until the operator edits
// them by hand.
type EntryPage struct {
	dateInput         textinput.Model
	timeInput         textinput.Model
	downtimeInput     textinput.Model
	observationsInput textinput.Model

	faultCursor   int // -1 until picked
	robotCursor   int
	cubaCursor    int
	productCursor int
	manualBoxes   string // "", record.ManualBoxesYes or record.ManualBoxesNo

	dateEdited bool
	timeEdited bool

	focusedField entryField
	message      string
	messageErr   bool

	list     *record.List
	sessions *session.Manager
	cat      *catalog.Catalog
	sink     Dispatcher
	now      func() time.Time

	width, height int
}

func NewEntryPage(list *record.List, sessions *session.Manager, cat *catalog.Catalog, sink Dispatcher) *EntryPage {
	date := textinput.New()
	date.Placeholder = record.DateLayout
	date.CharLimit = 10
	date.Prompt = ""

	clock := textinput.New()
	clock.Placeholder = record.TimeLayout
	clock.CharLimit = 5
	clock.Prompt = ""

	downtime := textinput.New()
	downtime.Placeholder = "minutos"
	downtime.CharLimit = 8
	downtime.Prompt = ""

	observations := textinput.New()
	observations.Placeholder = "opcional"
	observations.CharLimit = 512
	observations.Prompt = ""

	p := &EntryPage{
		dateInput:         date,
		timeInput:         clock,
		downtimeInput:     downtime,
		observationsInput: observations,
		faultCursor:       -1,
		robotCursor:       -1,
		cubaCursor:        -1,
		productCursor:     -1,
		list:              list,
		sessions:          sessions,
		cat:               cat,
		sink:              sink,
		now:               time.Now,
	}
	p.refreshClock()
	p.dateInput.Focus()
	return p
}

func (p *EntryPage) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, clockTick())
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg {
		return clockTickMsg{}
	})
}

func (p *EntryPage) refreshClock() {
	d := record.NewDraft(p.now())
	if !p.dateEdited {
		p.dateInput.SetValue(d.Date)
	}
	if !p.timeEdited {
		p.timeInput.SetValue(d.Time)
	}
}

func (p *EntryPage) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case clockTickMsg:
		p.refreshClock()
		return p, clockTick()
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *EntryPage) handleKey(msg tea.KeyMsg) (app.Page, tea.Cmd) {
	keyStr := msg.String()

	switch keyStr {
	case "tab", "down":
		p.advanceField(1)
		return p, nil
	case "shift+tab", "up":
		p.advanceField(-1)
		return p, nil
	case "ctrl+s":
		return p, p.submit()
	case "esc":
		p.blurAll()
		return p, nil
	}

	switch p.focusedField {
	case fieldDate:
		if keyStr == "enter" {
			return p, p.submit()
		}
		var cmd tea.Cmd
		before := p.dateInput.Value()
		p.dateInput, cmd = p.dateInput.Update(msg)
		if p.dateInput.Value() != before {
			p.dateEdited = true
		}
		return p, cmd

	case fieldTime:
		if keyStr == "enter" {
			return p, p.submit()
		}
		var cmd tea.Cmd
		before := p.timeInput.Value()
		p.timeInput, cmd = p.timeInput.Update(msg)
		if p.timeInput.Value() != before {
			p.timeEdited = true
		}
		return p, cmd

	case fieldFault:
		p.handleOptionKey(keyStr, &p.faultCursor, len(p.cat.FaultTypes))
		return p, nil

	case fieldDowntime:
		if keyStr == "enter" {
			return p, p.submit()
		}
		var cmd tea.Cmd
		p.downtimeInput, cmd = p.downtimeInput.Update(msg)
		return p, cmd

	case fieldManualBoxes:
		switch keyStr {
		case "enter", " ", "left", "right":
			p.toggleManualBoxes()
		}
		return p, nil

	case fieldRobot:
		p.handleOptionKey(keyStr, &p.robotCursor, len(p.cat.Robots))
		return p, nil

	case fieldCuba:
		p.handleOptionKey(keyStr, &p.cubaCursor, len(p.cat.Cubas))
		return p, nil

	case fieldProduct:
		p.handleOptionKey(keyStr, &p.productCursor, len(p.cat.Products))
		return p, nil

	case fieldObservations:
		if keyStr == "enter" {
			return p, p.submit()
		}
		var cmd tea.Cmd
		p.observationsInput, cmd = p.observationsInput.Update(msg)
		if v := p.observationsInput.Value(); v != strings.ToUpper(v) {
			p.observationsInput.SetValue(strings.ToUpper(v))
		}
		return p, cmd
	}
	return p, nil
}

func (p *EntryPage) handleOptionKey(keyStr string, cursor *int, n int) {
	if n == 0 {
		return
	}
	switch keyStr {
	case "left":
		if *cursor < 0 {
			*cursor = n - 1
			return
		}
		*cursor = (*cursor - 1 + n) % n
	case "right", " ", "enter":
		if *cursor < 0 {
			*cursor = 0
			return
		}
		*cursor = (*cursor + 1) % n
	}
}

func (p *EntryPage) toggleManualBoxes() {
	switch p.manualBoxes {
	case record.ManualBoxesYes:
		p.manualBoxes = record.ManualBoxesNo
	default:
		p.manualBoxes = record.ManualBoxesYes
	}
}

func (p *EntryPage) draft() record.Draft {
	return record.Draft{
		Date:         strings.TrimSpace(p.dateInput.Value()),
		Time:         strings.TrimSpace(p.timeInput.Value()),
		Fault:        p.optionValue(p.cat.FaultTypes, p.faultCursor),
		Downtime:     strings.TrimSpace(p.downtimeInput.Value()),
		ManualBoxes:  p.manualBoxes,
		RobotNumber:  p.optionValue(p.cat.Robots, p.robotCursor),
		Cuba:         p.optionValue(p.cat.Cubas, p.cubaCursor),
		Product:      p.optionValue(p.cat.Products, p.productCursor),
		Observations: p.observationsInput.Value(),
	}
}

func (p *EntryPage) optionValue(opts []string, cursor int) string {
	if cursor < 0 || cursor >= len(opts) {
		return ""
	}
	return opts[cursor]
}

func (p *EntryPage) submit() tea.Cmd {
	rec, err := p.list.Submit(p.draft(), p.sessions.Active())
	if err != nil {
		var verr *record.ValidationError
		if errors.As(err, &verr) {
			p.message = verr.Error()
		} else {
			p.message = err.Error()
		}
		p.messageErr = true
		return nil
	}

	p.resetForm()

	if !p.sink.Online() {
		// No link: mark failed right away so the record is queued
		// for the next reconnect sweep.
		p.list.SetDelivery(rec.ID, record.StatusFailed, delivery.ErrNoConnectivity)
		p.message = "Registro salvo. Sem conexão: envio pendente."
		p.messageErr = false
		return nil
	}

	p.message = "Registro salvo. Enviando para o Power BI..."
	p.messageErr = false
	return p.sink.DeliverCmd(rec)
}

func (p *EntryPage) resetForm() {
	p.faultCursor = -1
	p.robotCursor = -1
	p.cubaCursor = -1
	p.productCursor = -1
	p.manualBoxes = ""
	p.downtimeInput.SetValue("")
	p.observationsInput.SetValue("")
	p.dateEdited = false
	p.timeEdited = false
	p.refreshClock()
	p.blurCurrent()
	p.focusedField = fieldDate
	p.focusCurrent()
}

func (p *EntryPage) advanceField(dir int) {
	p.blurCurrent()
	p.focusedField = entryField((int(p.focusedField) + int(entryFieldCount) + dir) % int(entryFieldCount))
	p.focusCurrent()
}

func (p *EntryPage) blurAll() {
	p.dateInput.Blur()
	p.timeInput.Blur()
	p.downtimeInput.Blur()
	p.observationsInput.Blur()
}

func (p *EntryPage) blurCurrent() {
	switch p.focusedField {
	case fieldDate:
		p.dateInput.Blur()
	case fieldTime:
		p.timeInput.Blur()
	case fieldDowntime:
		p.downtimeInput.Blur()
	case fieldObservations:
		p.observationsInput.Blur()
	}
}

func (p *EntryPage) focusCurrent() {
	switch p.focusedField {
	case fieldDate:
		p.dateInput.Focus()
	case fieldTime:
		p.timeInput.Focus()
	case fieldDowntime:
		p.downtimeInput.Focus()
	case fieldObservations:
		p.observationsInput.Focus()
	}
}

func (p *EntryPage) View() string {
	var b strings.Builder
	b.WriteString(ui.Title("Registrar Falha"))
	b.WriteString("\n")

	if p.message != "" {
		if p.messageErr {
			b.WriteString(ui.ErrorStyle.Render(p.message))
		} else {
			b.WriteString(ui.AccentStyle.Render(p.message))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	inputWidth := p.width - entryLabelWidth - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	p.dateInput.Width = inputWidth
	p.timeInput.Width = inputWidth
	p.downtimeInput.Width = inputWidth
	p.observationsInput.Width = inputWidth

	focusedLabel := lipgloss.NewStyle().Foreground(ui.Primary).Bold(true)
	normalLabel := lipgloss.NewStyle().Foreground(ui.Text)

	renderLabel := func(name string, field entryField) string {
		padded := name + strings.Repeat(" ", maxInt(0, entryLabelWidth-lipgloss.Width(name)))
		if p.focusedField == field {
			return focusedLabel.Render(padded)
		}
		return normalLabel.Render(padded)
	}

	renderOption := func(name string, field entryField, opts []string, cursor int) {
		value := p.optionValue(opts, cursor)
		if value == "" {
			value = ui.DimStyle.Render("(selecione com ←/→)")
		} else if p.focusedField == field {
			value = focusedLabel.Render("◂ " + value + " ▸")
		}
		b.WriteString(renderLabel(name, field) + " " + value + "\n")
	}

	b.WriteString(renderLabel("Data", fieldDate) + " " + p.dateInput.View() + "\n")
	b.WriteString(renderLabel("Horário", fieldTime) + " " + p.timeInput.View() + "\n")
	renderOption("Falha", fieldFault, p.cat.FaultTypes, p.faultCursor)
	b.WriteString(renderLabel("Tempo Parado (min)", fieldDowntime) + " " + p.downtimeInput.View() + "\n")

	boxes := p.manualBoxes
	if boxes == "" {
		boxes = ui.DimStyle.Render("(SIM/NÃO)")
	} else if p.focusedField == fieldManualBoxes {
		boxes = focusedLabel.Render("◂ " + boxes + " ▸")
	}
	b.WriteString(renderLabel("Caixas Manual", fieldManualBoxes) + " " + boxes + "\n")

	renderOption("Número do Robô", fieldRobot, p.cat.Robots, p.robotCursor)
	renderOption("Cuba", fieldCuba, p.cat.Cubas, p.cubaCursor)
	renderOption("Produto", fieldProduct, p.cat.Products, p.productCursor)
	b.WriteString(renderLabel("Observações", fieldObservations) + " " + p.observationsInput.View() + "\n")

	b.WriteString("\n")
	b.WriteString(ui.DimStyle.Render("ctrl+s: salvar  tab: próximo campo  esc: desfocar"))

	form := b.String()

	if fault := p.optionValue(p.cat.FaultTypes, p.faultCursor); fault != "" {
		solution := wrap.String(p.cat.SolutionFor(fault), maxInt(20, p.width-6))
		panel := ui.Panel("Solução sugerida", solution, maxInt(30, p.width-2), 0, false)
		return lipgloss.JoinVertical(lipgloss.Left, form, "", panel)
	}
	return form
}

func (p *EntryPage) Name() string { return "Registrar" }

func (p *EntryPage) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "salvar")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "próximo campo")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "desfocar")),
	}
}

func (p *EntryPage) InputCaptured() bool {
	return p.dateInput.Focused() || p.timeInput.Focused() ||
		p.downtimeInput.Focused() || p.observationsInput.Focused()
}

func (p *EntryPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}
