package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	DefaultDeliveryTimeoutSec = 15
	DefaultProbeIntervalSec   = 10
	DefaultProbeAddress       = "api.powerbi.com:443"
)

// Config holds all faultctl configuration.
type Config struct {
	Endpoint           string `json:"endpoint,omitempty"`
	DeliveryTimeoutSec int    `json:"delivery_timeout_sec,omitempty"`
	ProbeAddress       string `json:"probe_address,omitempty"`
	ProbeIntervalSec   int    `json:"probe_interval_sec,omitempty"`
	ExportDir          string `json:"export_dir,omitempty"`
	CatalogPath        string `json:"catalog_path,omitempty"`
}

// Defaults returns a Config with default values. The sink endpoint has no
// default; it carries the dataset key and comes from the config file.
func Defaults() Config {
	return Config{
		DeliveryTimeoutSec: DefaultDeliveryTimeoutSec,
		ProbeAddress:       DefaultProbeAddress,
		ProbeIntervalSec:   DefaultProbeIntervalSec,
	}
}

// Load reads and merges global and local configs.
// Order: defaults → global (~/.config/faultctl/config.json) → local
// (<dir>/.faultctl/config.json).
func Load(dir string) Config {
	cfg := Defaults()

	if home, err := os.UserHomeDir(); err == nil {
		globalPath := filepath.Join(home, ".config", "faultctl", "config.json")
		mergeFromFile(&cfg, globalPath)
	}

	if dir != "" {
		localPath := filepath.Join(dir, ".faultctl", "config.json")
		mergeFromFile(&cfg, localPath)
	}

	return cfg
}

// Save writes the config to <dir>/.faultctl/config.json by default,
// or to the global config if global is true.
func Save(cfg Config, dir string, global bool) error {
	var target string
	if global {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		target = filepath.Join(home, ".config", "faultctl")
	} else {
		target = filepath.Join(dir, ".faultctl")
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(target, "config.json"), data, 0o644)
}

func mergeFromFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var fileCfg Config
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return
	}

	if fileCfg.Endpoint != "" {
		cfg.Endpoint = fileCfg.Endpoint
	}
	if fileCfg.DeliveryTimeoutSec != 0 {
		cfg.DeliveryTimeoutSec = fileCfg.DeliveryTimeoutSec
	}
	if fileCfg.ProbeAddress != "" {
		cfg.ProbeAddress = fileCfg.ProbeAddress
	}
	if fileCfg.ProbeIntervalSec != 0 {
		cfg.ProbeIntervalSec = fileCfg.ProbeIntervalSec
	}
	if fileCfg.ExportDir != "" {
		cfg.ExportDir = fileCfg.ExportDir
	}
	if fileCfg.CatalogPath != "" {
		cfg.CatalogPath = fileCfg.CatalogPath
	}
}
