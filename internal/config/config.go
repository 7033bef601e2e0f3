// Package config loads the optional YAML configuration for lastfm-events.
//
// Every setting has a default, so the tool runs without a config file. Values read
// from the file are overridden by command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pfrederiksen/lastfm-events/internal/logger"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// DefaultPath is the config file read when no path is given
const DefaultPath = "~/.config/lastfm-events/config.yaml"

// Config is the top-level application configuration.
type Config struct {
	// BaseURL is the Last.fm site events are scraped from.
	BaseURL string `yaml:"base_url"`

	// UserAgent is sent with the events page request.
	UserAgent string `yaml:"user_agent"`

	// Timeout bounds the single HTTP request (e.g. "30s").
	Timeout time.Duration `yaml:"timeout"`

	// Timezone is the IANA zone the generation stamp is taken in.
	Timezone string `yaml:"timezone"`

	// OutputDir overrides where calendar files are written.
	// Empty means the directory of the lastfm-events binary.
	OutputDir string `yaml:"output_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// UniqueUIDs appends a per-event identifier to every UID.
	UniqueUIDs bool `yaml:"unique_uids"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "https://www.last.fm",
		UserAgent: "lastfm-events/1.0 (github.com/pfrederiksen/lastfm-events)",
		Timeout:   30 * time.Second,
		Timezone:  "Europe/Amsterdam",
		LogLevel:  "info",
	}
}

// Normalize fills in zero values with defaults so partially-filled files still work.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = def.Timeout
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url %q must be an absolute http(s) URL", ErrInvalid, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalid)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalid, c.Timezone, err)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Location returns the configured timezone
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load reads configuration from a YAML file.
//
// Behavior:
//   - An empty path reads DefaultPath.
//   - A leading ~/ is expanded to the home directory.
//   - A missing file yields the defaults; no file is created.
//   - Present files are unmarshalled, normalized and validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = DefaultConfig()
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
