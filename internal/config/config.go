// Package config provides the YAML application configuration, including
// first-run creation of a default config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the sign-in UI.
	Listen string `yaml:"listen"`

	// Database is the path to the SQLite ledger database.
	Database string `yaml:"database"`

	// ExportsDir is where CSV and sheet exports are written.
	ExportsDir string `yaml:"exports_dir"`

	// Room is the room label used in sheet headings, e.g. "FH 306".
	Room string `yaml:"room"`

	// CSVBase is the base filename (no extension) for CSV exports.
	CSVBase string `yaml:"csv_base"`

	// ExportCron, when set, schedules an automatic sheet export for the
	// current day while serving, e.g. "0 18 * * 1-5".
	ExportCron string `yaml:"export_cron"`

	// Roster seeds the name list on first run against an empty database.
	Roster []string `yaml:"roster"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:     "127.0.0.1:8080",
		Database:   "data/roomlog.db",
		ExportsDir: "exports",
		Room:       "FH 306",
		CSVBase:    "room_logs",
		Roster:     []string{"Alice", "Bob", "Charlie", "Diana"},
	}
}

// Load reads the config at path. When the file does not exist, the default
// config is written there first so the next edit has a template to start
// from.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path with owner-only permissions, creating the
// parent directory if needed.
func Save(path string, cfg *Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Listen == "" {
		return fmt.Errorf("config: listen address is required")
	}
	if c.Database == "" {
		return fmt.Errorf("config: database path is required")
	}
	if c.Room == "" {
		return fmt.Errorf("config: room label is required")
	}
	return nil
}

// SheetPrefix is the room label with spaces removed, used in sheet export
// filenames ("FH306 Sign-In Sheet - <date>.txt").
func (c *Config) SheetPrefix() string {
	out := make([]rune, 0, len(c.Room))
	for _, r := range c.Room {
		if r != ' ' {
			out = append(out, r)
		}
	}
	return string(out)
}
