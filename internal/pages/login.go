package pages

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jvsales/faultctl/internal/app"
	"github.com/jvsales/faultctl/internal/catalog"
	"github.com/jvsales/faultctl/internal/session"
	"github.com/jvsales/faultctl/internal/ui"
)

type loginField int

const (
	loginFieldRegistration loginField = iota
	loginFieldName
	loginFieldShift
	loginFieldCount
)

// LoginPage collects the operator identity before the rest of the
// application becomes reachable.
type LoginPage struct {
	registrationInput textinput.Model
	nameInput         textinput.Model
	shiftCursor       int // -1 until the operator picks a shift

	focusedField loginField
	sessions     *session.Manager
	cat          *catalog.Catalog
	message      string

	width, height int
}

func NewLoginPage(sessions *session.Manager, cat *catalog.Catalog) *LoginPage {
	registration := textinput.New()
	registration.Placeholder = "ex: 12345"
	registration.CharLimit = 32
	registration.Prompt = ""
	registration.Focus()

	name := textinput.New()
	name.Placeholder = "nome completo"
	name.CharLimit = 128
	name.Prompt = ""

	return &LoginPage{
		registrationInput: registration,
		nameInput:         name,
		shiftCursor:       -1,
		sessions:          sessions,
		cat:               cat,
	}
}

func (p *LoginPage) Init() tea.Cmd {
	return textinput.Blink
}

func (p *LoginPage) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		p.advanceField(1)
		return p, nil
	case "shift+tab", "up":
		p.advanceField(-1)
		return p, nil
	case "enter":
		return p, p.submit()
	}

	switch p.focusedField {
	case loginFieldRegistration:
		var cmd tea.Cmd
		p.registrationInput, cmd = p.registrationInput.Update(keyMsg)
		p.forceUpper(&p.registrationInput)
		return p, cmd
	case loginFieldName:
		var cmd tea.Cmd
		p.nameInput, cmd = p.nameInput.Update(keyMsg)
		p.forceUpper(&p.nameInput)
		return p, cmd
	case loginFieldShift:
		switch keyMsg.String() {
		case "left":
			p.cycleShift(-1)
		case "right", " ":
			p.cycleShift(1)
		}
		return p, nil
	}
	return p, nil
}

func (p *LoginPage) submit() tea.Cmd {
	_, err := p.sessions.Login(p.registrationInput.Value(), p.nameInput.Value(), p.shiftValue())
	if err != nil {
		var verr *session.ValidationError
		if errors.As(err, &verr) {
			p.message = verr.Error()
		} else {
			p.message = err.Error()
		}
		return nil
	}
	p.message = ""
	return func() tea.Msg { return app.SessionStartedMsg{} }
}

// Reset clears the form so the next operator starts from a blank login.
func (p *LoginPage) Reset() {
	p.registrationInput.SetValue("")
	p.nameInput.SetValue("")
	p.shiftCursor = -1
	p.message = ""
	p.focusedField = loginFieldRegistration
	p.registrationInput.Focus()
	p.nameInput.Blur()
}

func (p *LoginPage) shiftValue() string {
	if p.shiftCursor < 0 || p.shiftCursor >= len(p.cat.Shifts) {
		return ""
	}
	return p.cat.Shifts[p.shiftCursor]
}

func (p *LoginPage) cycleShift(dir int) {
	n := len(p.cat.Shifts)
	if n == 0 {
		return
	}
	if p.shiftCursor < 0 {
		p.shiftCursor = 0
		return
	}
	p.shiftCursor = (p.shiftCursor + dir + n) % n
}

func (p *LoginPage) forceUpper(in *textinput.Model) {
	v := in.Value()
	if upper := strings.ToUpper(v); upper != v {
		in.SetValue(upper)
	}
}

func (p *LoginPage) advanceField(dir int) {
	switch p.focusedField {
	case loginFieldRegistration:
		p.registrationInput.Blur()
	case loginFieldName:
		p.nameInput.Blur()
	}
	p.focusedField = loginField((int(p.focusedField) + int(loginFieldCount) + dir) % int(loginFieldCount))
	switch p.focusedField {
	case loginFieldRegistration:
		p.registrationInput.Focus()
	case loginFieldName:
		p.nameInput.Focus()
	}
}

func (p *LoginPage) View() string {
	var b strings.Builder
	b.WriteString(ui.Title("Controle de Falhas"))
	b.WriteString("\n")
	b.WriteString(ui.DimStyle.Render("Identifique-se para iniciar o turno"))
	b.WriteString("\n\n")

	focusedLabel := lipgloss.NewStyle().Foreground(ui.Primary).Bold(true)
	normalLabel := lipgloss.NewStyle().Foreground(ui.Text)

	renderLabel := func(name string, field loginField) string {
		padded := name + strings.Repeat(" ", maxInt(0, 18-lipgloss.Width(name)))
		if p.focusedField == field {
			return focusedLabel.Render(padded)
		}
		return normalLabel.Render(padded)
	}

	b.WriteString(renderLabel("Matrícula", loginFieldRegistration) + " " + p.registrationInput.View() + "\n")
	b.WriteString(renderLabel("Nome do Operador", loginFieldName) + " " + p.nameInput.View() + "\n")

	shift := p.shiftValue()
	if shift == "" {
		shift = ui.DimStyle.Render("(selecione com ←/→)")
	} else if p.focusedField == loginFieldShift {
		shift = focusedLabel.Render("◂ " + shift + " ▸")
	}
	b.WriteString(renderLabel("Turno", loginFieldShift) + " " + shift + "\n")

	b.WriteString("\n")
	if p.message != "" {
		b.WriteString(ui.ErrorStyle.Render(p.message))
		b.WriteString("\n\n")
	}
	b.WriteString(ui.DimStyle.Render("enter: entrar  tab: próximo campo"))

	return ui.Panel("Login", b.String(), 56, 0, true)
}

func (p *LoginPage) Name() string { return "Login" }

func (p *LoginPage) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "entrar")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "próximo campo")),
	}
}

func (p *LoginPage) InputCaptured() bool {
	return p.registrationInput.Focused() || p.nameInput.Focused()
}

func (p *LoginPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
