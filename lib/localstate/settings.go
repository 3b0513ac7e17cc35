// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package localstate

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/lib/codec"
)

// SettingsStore persists system settings locally when the backend
// does not implement the settings endpoint. The admin page writes
// here after a 404 and reads back on the next visit, so the settings
// form stays functional against partial deployments.
type SettingsStore struct {
	path string
}

// NewSettingsStore returns a store backed by the given file. An empty
// path uses settings.cbor under DefaultDir.
func NewSettingsStore(path string) *SettingsStore {
	if path == "" {
		path = filepath.Join(DefaultDir(), "settings.cbor")
	}
	return &SettingsStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *SettingsStore) Path() string {
	return s.path
}

// Get returns the stored settings, or (nil, nil) when none are stored
// or the file cannot be decoded. A corrupt file is removed so the
// next Put starts clean.
func (s *SettingsStore) Get() (*api.SystemSettings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var settings api.SystemSettings
	if err := codec.Unmarshal(data, &settings); err != nil {
		os.Remove(s.path)
		return nil, nil
	}
	return &settings, nil
}

// Put stores settings, replacing any prior value.
func (s *SettingsStore) Put(settings *api.SystemSettings) error {
	data, err := codec.Marshal(settings)
	if err != nil {
		return err
	}
	return writeFile(s.path, data)
}
