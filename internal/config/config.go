// Package config handles chrono configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Data sources.
const (
	SourceFile   = "file"
	SourceSQLite = "sqlite"
)

// Themes.
const (
	ThemeDefault      = "default"
	ThemeHighContrast = "high-contrast"
)

// Config is the root configuration structure for chrono.
type Config struct {
	// Data selects and locates the archive dataset.
	Data DataConfig `yaml:"data" mapstructure:"data"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// TUI settings
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`

	// State controls where session state is persisted.
	State StateConfig `yaml:"state" mapstructure:"state"`
}

// DataConfig contains dataset settings.
type DataConfig struct {
	// Source is "file" (JSON dataset) or "sqlite".
	Source string `yaml:"source" mapstructure:"source"`

	// Path is the JSON dataset file.
	Path string `yaml:"path" mapstructure:"path"`

	// Database is the SQLite database file path.
	Database string `yaml:"database" mapstructure:"database"`

	// Watch reloads the JSON dataset when it changes on disk.
	Watch bool `yaml:"watch" mapstructure:"watch"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is the log file path. The TUI owns the terminal, so an empty path
	// discards logs while it runs.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// TUIConfig contains TUI settings.
type TUIConfig struct {
	// Theme is the color theme (default, high-contrast).
	Theme string `yaml:"theme" mapstructure:"theme"`

	// Compact starts the timeline in compact mode.
	Compact bool `yaml:"compact" mapstructure:"compact"`

	// Overscan is the number of rows rendered beyond each viewport edge.
	Overscan int `yaml:"overscan" mapstructure:"overscan"`

	// SmoothScroll animates hash navigation.
	SmoothScroll bool `yaml:"smooth_scroll" mapstructure:"smooth_scroll"`

	// Estimates are initial row heights in terminal lines.
	Estimates EstimatesConfig `yaml:"estimates" mapstructure:"estimates"`

	// TwoColumnMinWidth is the terminal width at which cards alternate columns.
	TwoColumnMinWidth int `yaml:"two_column_min_width" mapstructure:"two_column_min_width"`
}

// EstimatesConfig holds row size estimates.
type EstimatesConfig struct {
	Item        int `yaml:"item" mapstructure:"item"`
	ItemCompact int `yaml:"item_compact" mapstructure:"item_compact"`
	Header      int `yaml:"header" mapstructure:"header"`
}

// StateConfig contains session state settings.
type StateConfig struct {
	// Path is the state file (default: ~/.local/state/chrono/state.json).
	Path string `yaml:"path" mapstructure:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	stateDir := filepath.Join(homeDir, ".local", "state", "chrono")
	dataDir := filepath.Join(homeDir, ".local", "share", "chrono")

	return &Config{
		Data: DataConfig{
			Source:   SourceFile,
			Path:     filepath.Join(dataDir, "timeline.json"),
			Database: filepath.Join(dataDir, "chrono.db"),
			Watch:    true,
		},
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "console",
			File:         filepath.Join(stateDir, "chrono.log"),
			EnableCaller: false,
		},
		TUI: TUIConfig{
			Theme:        ThemeDefault,
			Compact:      false,
			Overscan:     12,
			SmoothScroll: true,
			Estimates: EstimatesConfig{
				Item:        7,
				ItemCompact: 3,
				Header:      2,
			},
			TwoColumnMinWidth: 100,
		},
		State: StateConfig{
			Path: filepath.Join(stateDir, "state.json"),
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceFile:
		if c.Data.Path == "" {
			return fmt.Errorf("data.path is required for the file source")
		}
	case SourceSQLite:
		if c.Data.Database == "" {
			return fmt.Errorf("data.database is required for the sqlite source")
		}
	default:
		return fmt.Errorf("data.source must be one of file, sqlite (got %q)", c.Data.Source)
	}

	switch c.Logging.Format {
	case "console", "json", "":
	default:
		return fmt.Errorf("logging.format must be one of console, json")
	}

	switch c.TUI.Theme {
	case ThemeDefault, ThemeHighContrast:
	default:
		return fmt.Errorf("tui.theme must be one of default, high-contrast (got %q)", c.TUI.Theme)
	}

	if c.TUI.Overscan < 0 {
		return fmt.Errorf("tui.overscan must not be negative")
	}
	if c.TUI.Estimates.Item < 1 || c.TUI.Estimates.ItemCompact < 1 || c.TUI.Estimates.Header < 1 {
		return fmt.Errorf("tui.estimates must be at least 1 line")
	}
	if c.TUI.TwoColumnMinWidth < 0 {
		return fmt.Errorf("tui.two_column_min_width must not be negative")
	}

	return nil
}

// EnsureDirectories creates the directories holding the state and log files.
func (c *Config) EnsureDirectories() error {
	dirs := []string{}
	if c.State.Path != "" {
		dirs = append(dirs, filepath.Dir(c.State.Path))
	}
	if c.Logging.File != "" {
		dirs = append(dirs, filepath.Dir(c.Logging.File))
	}
	if c.Data.Source == SourceSQLite {
		dirs = append(dirs, filepath.Dir(c.Data.Database))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
