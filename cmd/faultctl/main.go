package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jvsales/faultctl/internal/app"
	"github.com/jvsales/faultctl/internal/catalog"
	"github.com/jvsales/faultctl/internal/config"
	"github.com/jvsales/faultctl/internal/delivery"
	"github.com/jvsales/faultctl/internal/export"
	"github.com/jvsales/faultctl/internal/pages"
	"github.com/jvsales/faultctl/internal/record"
	"github.com/jvsales/faultctl/internal/session"
)

// sinkDispatcher joins the HTTP client and the link monitor into the
// single surface the entry form needs.
type sinkDispatcher struct {
	*delivery.Client
	*delivery.Monitor
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Load(cwd)
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat = catalog.Load(cfg.CatalogPath)
	}

	exportDir := cfg.ExportDir
	if exportDir == "" {
		exportDir = filepath.Join(cwd, "exportacoes")
	}

	sessions := session.NewManager()
	list := record.NewList()

	client := delivery.NewClient(cfg.Endpoint, time.Duration(cfg.DeliveryTimeoutSec)*time.Second)
	monitor := delivery.NewMonitor(cfg.ProbeAddress, time.Duration(cfg.ProbeIntervalSec)*time.Second)
	retryer := delivery.NewRetryer(list, client)
	store := export.NewStore(exportDir)

	sink := sinkDispatcher{Client: client, Monitor: monitor}

	pageMap := map[app.PageID]app.Page{
		app.EntryPage:    pages.NewEntryPage(list, sessions, &cat, sink),
		app.RecordsPage:  pages.NewRecordsPage(list, store, sessions, retryer),
		app.SettingsPage: pages.NewSettingsPage(&cfg, cwd),
	}
	login := pages.NewLoginPage(sessions, &cat)

	model := app.New(login, pageMap, sessions, list, monitor, retryer)

	monitor.Start()
	defer monitor.Stop()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}
