package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	def := DefaultConfig()
	if *cfg != *def {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, def)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Load() should not create a config file")
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "lastfm-events")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("timezone: UTC\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
base_url: https://example.com/
user_agent: test-agent
timeout: 5s
timezone: UTC
output_dir: /tmp/calendars
log_level: debug
unique_uids: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	want := Config{
		BaseURL:    "https://example.com",
		UserAgent:  "test-agent",
		Timeout:    5 * time.Second,
		Timezone:   "UTC",
		OutputDir:  "/tmp/calendars",
		LogLevel:   "debug",
		UniqueUIDs: true,
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_PartialFileNormalized(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log_level: warn\n"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.BaseURL != DefaultConfig().BaseURL || cfg.Timeout != 30*time.Second || cfg.Timezone != "Europe/Amsterdam" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"relative base url", "base_url: www.last.fm\n"},
		{"unknown timezone", "timezone: Mars/Olympus_Mons\n"},
		{"unknown log level", "log_level: loud\n"},
		{"negative timeout", "timeout: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "timeout: [not, a, duration\n")); err == nil {
		t.Error("Load() expected error for malformed YAML")
	}
}

func TestConfig_Location(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location() unexpected error: %v", err)
	}
	if loc.String() != "Europe/Amsterdam" {
		t.Errorf("Location() = %v", loc)
	}
}
