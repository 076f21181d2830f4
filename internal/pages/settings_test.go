package pages

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jvsales/faultctl/internal/config"
)

func TestSettingsArrowKeyNavigation(t *testing.T) {
	cfg := config.Defaults()
	p := NewSettingsPage(&cfg, t.TempDir())

	if p.cursor != 0 {
		t.Fatalf("expected cursor=0, got %d", p.cursor)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 1 {
		t.Fatalf("expected cursor=1 after down, got %d", p.cursor)
	}

	for i := 0; i < len(settingFields); i++ {
		p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if p.cursor != len(settingFields)-1 {
		t.Fatalf("expected cursor to clamp at %d, got %d", len(settingFields)-1, p.cursor)
	}

	p.cursor = 0
	p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Fatalf("expected cursor to clamp at 0, got %d", p.cursor)
	}
}

func TestSettingsEnterEditMode(t *testing.T) {
	cfg := config.Defaults()
	p := NewSettingsPage(&cfg, t.TempDir())

	if p.editing {
		t.Fatal("expected editing=false initially")
	}

	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !p.editing {
		t.Fatal("expected editing=true after Enter")
	}

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.editing {
		t.Fatal("expected editing=false after Esc")
	}
}

func TestSettingsApplyEndpoint(t *testing.T) {
	cfg := config.Defaults()
	p := NewSettingsPage(&cfg, t.TempDir())

	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p.input.SetValue("https://api.powerbi.com/beta/ds/rows?key=abc")
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cfg.Endpoint != "https://api.powerbi.com/beta/ds/rows?key=abc" {
		t.Fatalf("expected endpoint applied, got %q", cfg.Endpoint)
	}
	if p.editing {
		t.Fatal("expected editing=false after apply")
	}
}

func TestSettingsRejectsNonNumericTimeout(t *testing.T) {
	cfg := config.Defaults()
	p := NewSettingsPage(&cfg, t.TempDir())

	for settingFields[p.cursor].key != "delivery_timeout" {
		p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p.input.SetValue("abc")
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cfg.DeliveryTimeoutSec != config.DefaultDeliveryTimeoutSec {
		t.Fatalf("expected timeout unchanged, got %d", cfg.DeliveryTimeoutSec)
	}
}

func TestSettingsSaveWritesLocalConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Endpoint = "https://example.com/rows"
	p := NewSettingsPage(&cfg, dir)

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	path := filepath.Join(dir, ".faultctl", "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}

	loaded := config.Load(dir)
	if loaded.Endpoint != cfg.Endpoint {
		t.Fatalf("expected endpoint %q after reload, got %q", cfg.Endpoint, loaded.Endpoint)
	}
}
