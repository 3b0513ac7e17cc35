// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the stockroom client configuration.
//
// Configuration is loaded from a single YAML file resolved in order:
//   - STOCKROOM_CONFIG environment variable, or
//   - $XDG_CONFIG_HOME/stockroom/config.yaml, or
//   - ~/.config/stockroom/config.yaml
//
// A missing file is not an error: the client is fully usable with the
// built-in defaults, and command-line flags override whatever the file
// provides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stockroomhq/stockroom/lib/navigation"
)

// DefaultServerURL is where a locally run inventory service listens.
const DefaultServerURL = "http://localhost:5001"

// Config is the client configuration.
type Config struct {
	// ServerURL is the base URL of the inventory service.
	ServerURL string `yaml:"server_url"`

	// DefaultPage is the page the dashboard opens on.
	DefaultPage string `yaml:"default_page"`

	// Theme selects the dashboard color theme ("dark" or "light").
	Theme string `yaml:"theme"`

	// RequestTimeout bounds every API request, as a Go duration
	// string ("10s", "1m"). Empty means the per-command default.
	RequestTimeout string `yaml:"request_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ServerURL:   DefaultServerURL,
		DefaultPage: string(navigation.PageDashboard),
		Theme:       "dark",
	}
}

// Path returns the config file path without reading it. The
// STOCKROOM_CONFIG environment variable wins; otherwise the file lives
// under the XDG config directory.
func Path() string {
	if path := os.Getenv("STOCKROOM_CONFIG"); path != "" {
		return path
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "stockroom", "config.yaml")
}

// Load resolves the config file path and loads it. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file, merging it over
// the defaults. A nonexistent file yields the defaults; any other read
// or parse failure is an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.ServerURL == "" {
		errs = append(errs, fmt.Errorf("server_url is required"))
	}

	if !navigation.Known(navigation.Page(c.DefaultPage)) {
		errs = append(errs, fmt.Errorf("unknown default_page: %s", c.DefaultPage))
	}

	if c.Theme != "dark" && c.Theme != "light" {
		errs = append(errs, fmt.Errorf("theme must be dark or light, got %s", c.Theme))
	}

	if c.RequestTimeout != "" {
		if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
			errs = append(errs, fmt.Errorf("invalid request_timeout: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Timeout returns the configured request timeout, or fallback when the
// config does not set one.
func (c *Config) Timeout(fallback time.Duration) time.Duration {
	if c.RequestTimeout == "" {
		return fallback
	}
	timeout, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return fallback
	}
	return timeout
}
