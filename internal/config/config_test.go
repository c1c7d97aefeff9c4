package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TABSEL_CONFIG", "")
	os.Unsetenv("TABSEL_CONFIG")
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.Format != "csv" {
		t.Errorf("input.format = %q, want %q", cfg.Input.Format, "csv")
	}
	if !cfg.Input.HasHeader {
		t.Error("input.has_header should default to true")
	}
	if cfg.Output.Format != "plain" {
		t.Errorf("output.format = %q, want %q", cfg.Output.Format, "plain")
	}
	if len(cfg.UI.Modes) != 1 || cfg.UI.Modes[0] != "row" {
		t.Errorf("ui.modes = %v, want [row]", cfg.UI.Modes)
	}
	if !cfg.UI.Filter {
		t.Error("ui.filter should default to true")
	}
	if cfg.History.Enabled {
		t.Error("history should default to disabled")
	}
	if cfg.UI.Theme.Selection == "" {
		t.Error("theme selection color missing")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TABSEL_OUTPUT_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("output.format = %q, want env override %q", cfg.Output.Format, "json")
	}
}

func TestLoadConfigFile(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[output]\nformat = \"csv\"\n\n[ui]\nfilter = false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TABSEL_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "csv" {
		t.Errorf("output.format = %q, want %q", cfg.Output.Format, "csv")
	}
	if cfg.UI.Filter {
		t.Error("ui.filter should be false from config file")
	}
	// Unset keys keep their defaults.
	if cfg.Input.Format != "csv" {
		t.Errorf("input.format = %q, want default %q", cfg.Input.Format, "csv")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("TABSEL_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Output.Format = "json"
	cfg.UI.Modes = []string{"row", "cell"}
	cfg.History.Enabled = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if got.Output.Format != "json" {
		t.Errorf("output.format = %q, want %q", got.Output.Format, "json")
	}
	if len(got.UI.Modes) != 2 || got.UI.Modes[1] != "cell" {
		t.Errorf("ui.modes = %v, want [row cell]", got.UI.Modes)
	}
	if !got.History.Enabled {
		t.Error("history.enabled lost in round trip")
	}
}
