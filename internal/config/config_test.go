package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.DeliveryTimeoutSec != 15 {
		t.Errorf("expected DeliveryTimeoutSec=15, got=%d", cfg.DeliveryTimeoutSec)
	}
	if cfg.ProbeIntervalSec != 10 {
		t.Errorf("expected ProbeIntervalSec=10, got=%d", cfg.ProbeIntervalSec)
	}
	if cfg.ProbeAddress == "" {
		t.Error("expected a default probe address")
	}
	if cfg.Endpoint != "" {
		t.Error("endpoint must have no default; it carries the dataset key")
	}
}

func TestLoadMerge(t *testing.T) {
	tmp := t.TempDir()
	localDir := filepath.Join(tmp, ".faultctl")
	os.MkdirAll(localDir, 0o755)
	os.WriteFile(filepath.Join(localDir, "config.json"), []byte(`{
		"endpoint": "https://sink.example/rows?key=abc",
		"probe_interval_sec": 30
	}`), 0o644)

	cfg := Load(tmp)

	if cfg.Endpoint != "https://sink.example/rows?key=abc" {
		t.Errorf("expected endpoint from local config, got=%s", cfg.Endpoint)
	}
	if cfg.ProbeIntervalSec != 30 {
		t.Errorf("expected probe interval 30 from local config, got=%d", cfg.ProbeIntervalSec)
	}
	// Timeout should still be default since not overridden.
	if cfg.DeliveryTimeoutSec != 15 {
		t.Errorf("expected default DeliveryTimeoutSec=15, got=%d", cfg.DeliveryTimeoutSec)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmp := t.TempDir()
	cfg := Config{
		Endpoint:           "https://sink.example/rows",
		DeliveryTimeoutSec: 5,
		ExportDir:          "/tmp/exports",
	}

	if err := Save(cfg, tmp, false); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(tmp, ".faultctl", "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	loaded := Load(tmp)
	if loaded.Endpoint != "https://sink.example/rows" {
		t.Errorf("expected endpoint round-tripped, got=%s", loaded.Endpoint)
	}
	if loaded.DeliveryTimeoutSec != 5 {
		t.Errorf("expected DeliveryTimeoutSec=5, got=%d", loaded.DeliveryTimeoutSec)
	}
	if loaded.ExportDir != "/tmp/exports" {
		t.Errorf("expected ExportDir round-tripped, got=%s", loaded.ExportDir)
	}
}

func TestLoadIgnoresMalformedFile(t *testing.T) {
	tmp := t.TempDir()
	localDir := filepath.Join(tmp, ".faultctl")
	os.MkdirAll(localDir, 0o755)
	os.WriteFile(filepath.Join(localDir, "config.json"), []byte("{not json"), 0o644)

	cfg := Load(tmp)
	if cfg.DeliveryTimeoutSec != 15 {
		t.Errorf("expected defaults when config is malformed, got=%d", cfg.DeliveryTimeoutSec)
	}
}
