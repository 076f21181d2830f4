package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jvsales/faultctl/internal/app"
	"github.com/jvsales/faultctl/internal/config"
	"github.com/jvsales/faultctl/internal/ui"
)

type settingField struct {
	label string
	key   string
}

var settingFields = []settingField{
	{"Endpoint Power BI", "endpoint"},
	{"Timeout de envio (s)", "delivery_timeout"},
	{"Endereço de sonda", "probe_address"},
	{"Intervalo da sonda (s)", "probe_interval"},
	{"Diretório de exportação", "export_dir"},
	{"Arquivo de catálogo", "catalog_path"},
}

type SettingsPage struct {
	cfg           *config.Config
	workDir       string
	cursor        int
	editing       bool
	input         textinput.Model
	width, height int
	message       string
}

func NewSettingsPage(cfg *config.Config, workDir string) *SettingsPage {
	ti := textinput.New()
	ti.CharLimit = 256
	return &SettingsPage{
		cfg:     cfg,
		workDir: workDir,
		input:   ti,
	}
}

func (p *SettingsPage) Init() tea.Cmd { return nil }

func (p *SettingsPage) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if p.editing {
			switch msg.String() {
			case "enter":
				p.applyValue(p.input.Value())
				p.editing = false
				p.input.Blur()
				return p, nil
			case "esc":
				p.editing = false
				p.input.Blur()
				return p, nil
			}
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}

		switch msg.String() {
		case "down":
			if p.cursor < len(settingFields)-1 {
				p.cursor++
			}
		case "up":
			if p.cursor > 0 {
				p.cursor--
			}
		case "enter", "e":
			p.editing = true
			p.input.SetValue(p.getValue(p.cursor))
			p.input.Focus()
			return p, p.input.Focus()
		case "s":
			if err := config.Save(*p.cfg, p.workDir, false); err != nil {
				p.message = fmt.Sprintf("Erro ao salvar: %v", err)
			} else {
				p.message = "Configuração salva"
			}
		}
	}
	return p, nil
}

func (p *SettingsPage) View() string {
	var inner strings.Builder

	for i, f := range settingFields {
		cursor := "  "
		if i == p.cursor {
			cursor = ui.BoldStyle.Render("> ")
		}

		val := p.getValue(i)
		if val == "" {
			val = ui.DimStyle.Render("(não definido)")
		}

		line := fmt.Sprintf("%s%-24s %s", cursor, f.label, val)
		inner.WriteString(line)
		inner.WriteString("\n")
	}

	if p.editing {
		inner.WriteString("\n")
		inner.WriteString(fmt.Sprintf("  Editar %s:\n", settingFields[p.cursor].label))
		inner.WriteString("  " + p.input.View())
		inner.WriteString("\n")
	}

	if p.message != "" {
		inner.WriteString("\n  " + p.message)
	}

	return ui.Panel("Configuração", inner.String(), p.width, 0, false)
}

func (p *SettingsPage) Name() string { return "Configuração" }

func (p *SettingsPage) ShortHelp() []key.Binding {
	if p.editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "aplicar")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancelar")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "editar")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "salvar no disco")),
	}
}

func (p *SettingsPage) InputCaptured() bool {
	return p.editing
}

func (p *SettingsPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *SettingsPage) getValue(idx int) string {
	switch settingFields[idx].key {
	case "endpoint":
		return p.cfg.Endpoint
	case "delivery_timeout":
		return strconv.Itoa(p.cfg.DeliveryTimeoutSec)
	case "probe_address":
		return p.cfg.ProbeAddress
	case "probe_interval":
		return strconv.Itoa(p.cfg.ProbeIntervalSec)
	case "export_dir":
		return p.cfg.ExportDir
	case "catalog_path":
		return p.cfg.CatalogPath
	}
	return ""
}

func (p *SettingsPage) applyValue(val string) {
	switch settingFields[p.cursor].key {
	case "endpoint":
		p.cfg.Endpoint = val
	case "delivery_timeout":
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			p.cfg.DeliveryTimeoutSec = n
		}
	case "probe_address":
		p.cfg.ProbeAddress = val
	case "probe_interval":
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			p.cfg.ProbeIntervalSec = n
		}
	case "export_dir":
		p.cfg.ExportDir = val
	case "catalog_path":
		p.cfg.CatalogPath = val
	}
	p.message = fmt.Sprintf("%s atualizado", settingFields[p.cursor].label)
}
