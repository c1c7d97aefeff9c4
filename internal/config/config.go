// Package config loads tabsel configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Input   InputConfig
	Output  OutputConfig
	UI      UIConfig
	History HistoryConfig
}

// InputConfig holds ingestion defaults; flags override them.
type InputConfig struct {
	Format    string
	HasHeader bool `mapstructure:"has_header"`
}

// OutputConfig holds the default output encoding.
type OutputConfig struct {
	Format string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Modes  []string
	Filter bool
	Theme  ThemeConfig
}

// ThemeConfig holds the color values the front end styles itself with.
// Defaults follow the Catppuccin Mocha palette.
type ThemeConfig struct {
	Accent    string
	Selection string
	Header    string
	Text      string
	Dim       string
}

// HistoryConfig holds the optional selection-history store settings.
type HistoryConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from file and env. Env var overrides use prefix
// TABSEL_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("input.format", "csv")
	v.SetDefault("input.has_header", true)
	v.SetDefault("output.format", "plain")
	v.SetDefault("ui.modes", []string{"row"})
	v.SetDefault("ui.filter", true)
	v.SetDefault("ui.theme.accent", "#f5c2e7")
	v.SetDefault("ui.theme.selection", "#45475a")
	v.SetDefault("ui.theme.header", "#cba6f7")
	v.SetDefault("ui.theme.text", "#cdd6f4")
	v.SetDefault("ui.theme.dim", "#7f849c")
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "tabsel", "history.db"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TABSEL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tabsel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TABSEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used to persist preferences changed at runtime.
func Save(cfg Config) error {
	path := os.Getenv("TABSEL_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "tabsel", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("input.format", cfg.Input.Format)
	v.Set("input.has_header", cfg.Input.HasHeader)
	v.Set("output.format", cfg.Output.Format)
	v.Set("ui.modes", cfg.UI.Modes)
	v.Set("ui.filter", cfg.UI.Filter)
	v.Set("ui.theme.accent", cfg.UI.Theme.Accent)
	v.Set("ui.theme.selection", cfg.UI.Theme.Selection)
	v.Set("ui.theme.header", cfg.UI.Theme.Header)
	v.Set("ui.theme.text", cfg.UI.Theme.Text)
	v.Set("ui.theme.dim", cfg.UI.Theme.Dim)
	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.path", cfg.History.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
