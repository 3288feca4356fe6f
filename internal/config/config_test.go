package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"TICKETLENS_STALE_DAYS", "TICKETLENS_SOURCE", "TICKETLENS_OUTPUT", "TICKETLENS_PROFILE_FILE", "TICKETLENS_MINIFY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StaleDays != DefaultStaleDays || cfg.Source != DefaultSource || cfg.Output != DefaultOutput {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if !cfg.Minify {
		t.Error("Minify should default to true")
	}
}

func TestLoad_Environment(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(*AppConfig) bool
	}{
		{"stale days", map[string]string{"TICKETLENS_STALE_DAYS": "30"}, func(c *AppConfig) bool { return c.StaleDays == 30 }},
		{"bad stale days", map[string]string{"TICKETLENS_STALE_DAYS": "soon"}, func(c *AppConfig) bool { return c.StaleDays == DefaultStaleDays }},
		{"negative stale days", map[string]string{"TICKETLENS_STALE_DAYS": "-1"}, func(c *AppConfig) bool { return c.StaleDays == DefaultStaleDays }},
		{"source", map[string]string{"TICKETLENS_SOURCE": "servicenow"}, func(c *AppConfig) bool { return c.Source == "servicenow" }},
		{"minify off", map[string]string{"TICKETLENS_MINIFY": "false"}, func(c *AppConfig) bool { return !c.Minify }},
		{"profile file", map[string]string{"TICKETLENS_PROFILE_FILE": "/etc/tl.yaml"}, func(c *AppConfig) bool { return c.ProfileFile == "/etc/tl.yaml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("Load() = %+v", cfg)
			}
		})
	}
}

func TestGodotenvQuoting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `TICKETLENS_OUTPUT='reports/"weekly" dashboard.html'`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `reports/"weekly" dashboard.html`
	if env["TICKETLENS_OUTPUT"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["TICKETLENS_OUTPUT"])
	}
}
