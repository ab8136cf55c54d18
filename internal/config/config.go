// Package config loads the declutter configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"declutter/internal/pathutil"
)

// Config holds application configuration.
type Config struct {
	// HistoryPath points at the history file. Extension selects the
	// backend: .json for the flat file, .db for SQLite.
	HistoryPath string `toml:"history_path"`
	// ShowOrganized keeps previously organized inputs in the queue,
	// pre-marked skipped, instead of dropping them.
	ShowOrganized bool `toml:"show_organized"`
	// Quiet suppresses the end-of-session summary.
	Quiet bool `toml:"quiet"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		HistoryPath: "~/.config/declutter/history.json",
	}
}

// DefaultPath returns the default config path:
// ~/.config/declutter/config.toml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "declutter", "config.toml"), nil
}

// Load reads config from the TOML file, creating it with defaults if it
// doesn't exist. The history path comes back tilde-expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			// Non-fatal: defaults still apply if the write fails
			_ = Save(path, &cfg)
			return expand(&cfg)
		}
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.HistoryPath == "" {
		cfg.HistoryPath = Default().HistoryPath
	}

	return expand(&cfg)
}

// Save writes config to the TOML file, creating the directory if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func expand(cfg *Config) (*Config, error) {
	expanded, err := pathutil.ExpandHome(cfg.HistoryPath)
	if err != nil {
		return nil, err
	}
	cfg.HistoryPath = expanded
	return cfg, nil
}
