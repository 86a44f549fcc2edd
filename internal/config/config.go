// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages the taskflow client configuration.
//
// Configuration lives at ~/.taskflow/config.toml and is read once at
// startup. Environment variables prefixed TASKFLOW_ override file values,
// which lets scripts and CI point the client at another backend without
// touching the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/taskflowhq/taskflow-tui/internal/util"
)

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the full client configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`
}

// ServerConfig selects the backend the client talks to.
type ServerConfig struct {
	// BaseURL of the TaskFlow API.
	BaseURL string `toml:"base_url"`

	// TimeoutSeconds for API requests.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	// Theme is "auto", "dark", or "light".
	Theme string `toml:"theme"`

	// ShowSidebar toggles the chat history sidebar.
	ShowSidebar bool `toml:"show_sidebar"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:        "http://127.0.0.1:8000",
			TimeoutSeconds: 30,
		},
		UI: UIConfig{
			Theme:       "auto",
			ShowSidebar: true,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c *ServerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the taskflow config directory (~/.taskflow), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".taskflow")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, fills in defaults for missing values, applies
// environment overrides, and validates the result. A missing file is not an
// error; defaults are used.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path. Used by tests.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run, keep defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.setDefaults()
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults fills in zero values left by a partial config file.
func (c *Config) setDefaults() {
	def := Default()
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = def.Server.BaseURL
	}
	if c.Server.TimeoutSeconds == 0 {
		c.Server.TimeoutSeconds = def.Server.TimeoutSeconds
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// ApplyEnvOverrides overlays TASKFLOW_* environment variables on top of the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TASKFLOW_BASE_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("TASKFLOW_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Server.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("TASKFLOW_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// Validate checks the configuration for values the client cannot run with.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Server.BaseURL, "http://") && !strings.HasPrefix(c.Server.BaseURL, "https://") {
		return fmt.Errorf("server.base_url must start with http:// or https://, got %q", c.Server.BaseURL)
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("server.timeout_seconds must be positive, got %d", c.Server.TimeoutSeconds)
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be auto, dark, or light, got %q", c.UI.Theme)
	}
	return nil
}

// Save writes the configuration atomically with owner-only permissions.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes configuration to an explicit path. Used by tests.
func (c *Config) SaveTo(path string) error {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(buf.String()), 0600)
}

// =============================================================================
// DOT-NOTATION ACCESS
// =============================================================================

// Keys supported by Get/Set for the `taskflow config` command.

// Get returns a config value by dot-notation key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "server.base_url":
		return c.Server.BaseURL, nil
	case "server.timeout_seconds":
		return strconv.Itoa(c.Server.TimeoutSeconds), nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "ui.show_sidebar":
		return strconv.FormatBool(c.UI.ShowSidebar), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a config value by dot-notation key. The new value is
// validated before it is accepted.
func (c *Config) Set(key, value string) error {
	switch key {
	case "server.base_url":
		c.Server.BaseURL = value
	case "server.timeout_seconds":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("server.timeout_seconds must be an integer: %w", err)
		}
		c.Server.TimeoutSeconds = secs
	case "ui.theme":
		c.UI.Theme = value
	case "ui.show_sidebar":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ui.show_sidebar must be a boolean: %w", err)
		}
		c.UI.ShowSidebar = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return c.Validate()
}

// List returns all key=value pairs in stable order for `config list`.
func (c *Config) List() []string {
	keys := []string{"server.base_url", "server.timeout_seconds", "ui.theme", "ui.show_sidebar"}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, key := range keys {
		value, _ := c.Get(key)
		out = append(out, key+" = "+value)
	}
	return out
}
