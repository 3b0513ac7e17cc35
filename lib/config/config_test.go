// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.ServerURL != "http://localhost:5001" {
		t.Errorf("expected server_url=http://localhost:5001, got %s", cfg.ServerURL)
	}
	if cfg.DefaultPage != "dashboard" {
		t.Errorf("expected default_page=dashboard, got %s", cfg.DefaultPage)
	}
	if cfg.Theme != "dark" {
		t.Errorf("expected theme=dark, got %s", cfg.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
server_url: https://stock.example.com
default_page: inventory
theme: light
request_timeout: 45s
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.ServerURL != "https://stock.example.com" {
		t.Errorf("server_url = %s", cfg.ServerURL)
	}
	if cfg.DefaultPage != "inventory" {
		t.Errorf("default_page = %s", cfg.DefaultPage)
	}
	if got := cfg.Timeout(10 * time.Second); got != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", got)
	}
}

func TestLoadFileMissingYieldsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile on missing file failed: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("server_url = %s, want default", cfg.ServerURL)
	}
}

func TestLoadFilePartialMergesOverDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("server_url: http://inv.internal:8080\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.ServerURL != "http://inv.internal:8080" {
		t.Errorf("server_url = %s", cfg.ServerURL)
	}
	// Unset fields keep their defaults.
	if cfg.Theme != "dark" || cfg.DefaultPage != "dashboard" {
		t.Errorf("defaults not preserved: theme=%s default_page=%s", cfg.Theme, cfg.DefaultPage)
	}
}

func TestLoadRespectsEnvOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(configPath, []byte("theme: light\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STOCKROOM_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("theme = %s, want light", cfg.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty server url", func(c *Config) { c.ServerURL = "" }, true},
		{"unknown page", func(c *Config) { c.DefaultPage = "warehouse" }, true},
		{"bad theme", func(c *Config) { c.Theme = "solarized" }, true},
		{"bad timeout", func(c *Config) { c.RequestTimeout = "fast" }, true},
		{"valid timeout", func(c *Config) { c.RequestTimeout = "2m" }, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != test.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, test.wantErr)
			}
		})
	}
}

func TestTimeoutFallback(t *testing.T) {
	cfg := Default()
	if got := cfg.Timeout(10 * time.Second); got != 10*time.Second {
		t.Errorf("Timeout = %v, want fallback 10s", got)
	}
}
