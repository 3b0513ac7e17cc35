// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package views provides parsing and validation for user-authored
// saved table views. A view names a page and a canned filter query,
// so "low-on-bolts" can reopen the inventory table pre-filtered
// instead of retyping the search every time.
//
// Views are authored on disk as a single JSONC file (JSON extended
// with // comments, /* block comments */, and trailing commas), by
// default views.jsonc next to the client config. The typical flow:
//
//  1. ReadFile or Parse: JSONC bytes → []View
//  2. Validate: page names checked against the navigation table
package views

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/stockroomhq/stockroom/lib/navigation"
)

// Query is the filter a view applies to its table. Fields mirror the
// list-endpoint query parameters.
type Query struct {
	Search     string `json:"search,omitempty"`
	CategoryID int    `json:"category_id,omitempty"`
	Status     string `json:"status,omitempty"`
}

// View is one saved table view.
type View struct {
	Name  string `json:"name"`
	Page  string `json:"page"`
	Query Query  `json:"query"`
}

// file is the on-disk shape: a single document with a views array, so
// the file stays self-describing and has room for future top-level
// settings.
type file struct {
	Views []View `json:"views"`
}

// DefaultPath returns the views file path, next to the client config.
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "stockroom", "views.jsonc")
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals and validates the views.
func Parse(data []byte) ([]View, error) {
	stripped := jsonc.ToJSON(data)

	var parsed file
	if err := json.Unmarshal(stripped, &parsed); err != nil {
		return nil, fmt.Errorf("parsing views: %w", err)
	}

	if err := Validate(parsed.Views); err != nil {
		return nil, err
	}
	return parsed.Views, nil
}

// ReadFile reads and parses the views file. A missing file yields no
// views, matching the config loader's treatment of optional files.
func ReadFile(path string) ([]View, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	parsed, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

// Validate checks every view for a name, a known page, and a unique
// name. All problems are reported at once.
func Validate(parsed []View) error {
	var errs []error
	seen := make(map[string]bool)

	for i, view := range parsed {
		if view.Name == "" {
			errs = append(errs, fmt.Errorf("view %d: name is required", i))
			continue
		}
		if seen[view.Name] {
			errs = append(errs, fmt.Errorf("view %q: duplicate name", view.Name))
		}
		seen[view.Name] = true

		if !navigation.Known(navigation.Page(view.Page)) {
			errs = append(errs, fmt.Errorf("view %q: unknown page %q", view.Name, view.Page))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ForPage returns the views that target page, in file order.
func ForPage(parsed []View, page navigation.Page) []View {
	var matched []View
	for _, view := range parsed {
		if view.Page == string(page) {
			matched = append(matched, view)
		}
	}
	return matched
}
