package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CHRONO_DATA_PATH.
const EnvPrefix = "CHRONO"

// Loader handles configuration loading with Viper.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// SetConfigFile sets an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// Load loads configuration with proper precedence:
// defaults < config file < env vars < CLI flags
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	l.setupViper(cfg)

	if err := l.loadConfigFile(); err != nil {
		// Config file is optional, only error if explicitly specified
		if l.configFile != "" {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// expandTilde expands ~ to the user's home directory.
func expandTilde(path string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// expandPaths expands ~ in all path-related config fields.
func expandPaths(cfg *Config) {
	cfg.Data.Path = expandTilde(cfg.Data.Path)
	cfg.Data.Database = expandTilde(cfg.Data.Database)
	cfg.Logging.File = expandTilde(cfg.Logging.File)
	cfg.State.Path = expandTilde(cfg.State.Path)
}

// setupViper configures Viper with defaults and environment bindings.
func (l *Loader) setupViper(cfg *Config) {
	v := l.v

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		v.AddConfigPath(filepath.Join(xdgConfig, "chrono"))
	}

	homeDir, _ := os.UserHomeDir()
	if homeDir != "" {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "chrono"))
	}

	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l.setDefaults(cfg)

	// Unmarshal only sees env vars for keys Viper knows about.
	bindEnvVars(v)

	v.AutomaticEnv()
}

// setDefaults sets all default values in Viper.
func (l *Loader) setDefaults(cfg *Config) {
	v := l.v

	// Data
	v.SetDefault("data.source", cfg.Data.Source)
	v.SetDefault("data.path", cfg.Data.Path)
	v.SetDefault("data.database", cfg.Data.Database)
	v.SetDefault("data.watch", cfg.Data.Watch)

	// Logging
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.enable_caller", cfg.Logging.EnableCaller)

	// TUI
	v.SetDefault("tui.theme", cfg.TUI.Theme)
	v.SetDefault("tui.compact", cfg.TUI.Compact)
	v.SetDefault("tui.overscan", cfg.TUI.Overscan)
	v.SetDefault("tui.smooth_scroll", cfg.TUI.SmoothScroll)
	v.SetDefault("tui.estimates.item", cfg.TUI.Estimates.Item)
	v.SetDefault("tui.estimates.item_compact", cfg.TUI.Estimates.ItemCompact)
	v.SetDefault("tui.estimates.header", cfg.TUI.Estimates.Header)
	v.SetDefault("tui.two_column_min_width", cfg.TUI.TwoColumnMinWidth)

	// State
	v.SetDefault("state.path", cfg.State.Path)
}

// loadConfigFile attempts to load the configuration file.
func (l *Loader) loadConfigFile() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// ConfigFileUsed returns the config file that was loaded.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Set overrides a key; CLI flags land here, above every other source.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	loader := NewLoader()
	loader.SetConfigFile(path)
	return loader.Load()
}

// LoadDefault loads configuration with default search paths.
func LoadDefault() (*Config, error) {
	loader := NewLoader()
	return loader.Load()
}

// configKeys lists every key that accepts an environment override.
var configKeys = []string{
	"data.source",
	"data.path",
	"data.database",
	"data.watch",
	"logging.level",
	"logging.format",
	"logging.file",
	"logging.enable_caller",
	"tui.theme",
	"tui.compact",
	"tui.overscan",
	"tui.smooth_scroll",
	"tui.estimates.item",
	"tui.estimates.item_compact",
	"tui.estimates.header",
	"tui.two_column_min_width",
	"state.path",
}

// bindEnvVars binds CHRONO_* environment variables for config keys.
func bindEnvVars(v *viper.Viper) {
	for _, key := range configKeys {
		// data.path -> CHRONO_DATA_PATH
		envVar := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, envVar)
	}
}
