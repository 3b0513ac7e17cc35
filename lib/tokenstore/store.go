// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package tokenstore persists the operator's credentials between
// invocations. Analogous to SSH keys: authenticate once with
// "stockroom login", then every command and the dashboard load the
// saved session transparently.
//
// The store fails open: if the file is missing, unreadable, or
// corrupt, Load reports "no credentials" rather than an error, and the
// caller proceeds unauthenticated. A broken session file must never
// wedge the client — the worst outcome is being asked to log in again.
package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials holds the persisted session. At most one is active per
// store; Save replaces any prior value unconditionally.
type Credentials struct {
	// ServerURL is the base URL of the stockroom service the token
	// was issued by. Stored so commands need no --server flag after
	// login.
	ServerURL string `json:"server_url"`

	// Token is the opaque bearer token proving the user's identity.
	Token string `json:"token"`

	// Username and Role are a convenience copy of the profile at
	// login time. The session layer re-verifies against the server on
	// boot; these exist only for display before verification
	// completes (whoami without --verify).
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store reads and writes a credentials file at a fixed path.
type Store struct {
	path string
}

// DefaultPath returns the well-known credentials file path. Checks the
// STOCKROOM_SESSION_FILE environment variable first, then falls back
// to ~/.config/stockroom/session.json (honoring XDG_CONFIG_HOME).
func DefaultPath() string {
	if envPath := os.Getenv("STOCKROOM_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "stockroom-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "stockroom", "session.json")
}

// New creates a store at the given path. An empty path uses
// DefaultPath.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// Path returns the file path backing this store.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted credentials. Returns (nil, nil) when no
// usable credentials exist: missing file, unreadable file, corrupt
// JSON, or a record without a token. A corrupt file is removed
// best-effort so the next Save starts clean.
func (s *Store) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil
	}

	var credentials Credentials
	if err := json.Unmarshal(data, &credentials); err != nil {
		os.Remove(s.path)
		return nil, nil
	}
	if credentials.Token == "" || credentials.ServerURL == "" {
		os.Remove(s.path)
		return nil, nil
	}

	return &credentials, nil
}

// Save writes credentials, replacing any prior value. Creates the
// parent directory with mode 0700 if needed. The file is written with
// mode 0600 (owner-only read/write) since it contains a bearer token.
func (s *Store) Save(credentials *Credentials) error {
	data, err := json.MarshalIndent(credentials, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", s.path, err)
	}

	return nil
}

// Clear removes the persisted credentials. Removing an already-absent
// file is success — Clear is idempotent.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", s.path, err)
	}
	return nil
}
