// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package localstate persists client-side state that stands in for
// server features when the backend cannot serve them.
//
// Two stores live here. SettingsStore holds system settings locally
// when the backend's settings endpoint is unavailable, so the admin
// page keeps working against partial deployments. SnapshotCache holds
// the last successfully fetched dashboard data so the dashboard can
// render something when the service is unreachable.
//
// Both stores fail open the way the token store does: a missing or
// unreadable file reads as absent, never as an error the caller has
// to handle specially.
package localstate

import (
	"os"
	"path/filepath"
)

// DefaultDir returns the state directory. STOCKROOM_STATE_DIR wins,
// then XDG_STATE_HOME, then ~/.local/state/stockroom.
func DefaultDir() string {
	if dir := os.Getenv("STOCKROOM_STATE_DIR"); dir != "" {
		return dir
	}
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "stockroom-state")
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, "stockroom")
}

// writeFile writes data to path, creating the parent directory. State
// files are not secrets, but they describe inventory and order data,
// so they stay private to the user.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
