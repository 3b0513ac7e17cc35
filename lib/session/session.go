// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the client's authentication state. A Manager is
// an explicit, injected object — there is no package-level singleton —
// and it is the only code that transitions between authenticated and
// unauthenticated, whether by boot-time verification, login, logout,
// or the transport layer reporting a dead token.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/lib/tokenstore"
)

// Role is a permission level assigned to a user account.
type Role string

// The fixed role set. The server stores roles as plain strings; the
// client treats anything outside this set as invalid.
const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleUser  Role = "user"
)

// ParseRole validates a role string from the server or user input.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin, RoleStaff, RoleUser:
		return Role(value), nil
	}
	return "", fmt.Errorf("unknown role %q (want admin, staff, or user)", value)
}

// State is the session's position in its lifecycle.
type State int

const (
	// StateBooting means Boot has not yet completed. No API calls
	// should be issued in this state.
	StateBooting State = iota
	// StateUnauthenticated means there is no usable token. The only
	// way forward is Login.
	StateUnauthenticated
	// StateAuthenticated means a verified token is held and Role and
	// Profile are populated.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateBooting:
		return "booting"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrInvalidCredentials is returned by Login when the server rejects
// the username/password pair.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Manager is the session state machine. All mutation goes through
// Boot, Login, Logout, and the transport auth-failure callback; reads
// are cheap and safe from any goroutine. Transitions are serialized by
// an internal mutex — dashboard data loads run on goroutines, and a
// 401 racing a concurrent success resolves as "last transition wins",
// which is sound because a 401 anywhere means the token is globally
// dead.
type Manager struct {
	client *api.Client
	store  *tokenstore.Store
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	profile    *api.User
	apiSession *api.Session
}

// NewManager creates a Manager in the Booting state. logger may be nil
// for slog.Default().
func NewManager(client *api.Client, store *tokenstore.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		client: client,
		store:  store,
		logger: logger,
		state:  StateBooting,
	}
}

// Boot resolves the initial state from the token store. With no stored
// credentials it settles Unauthenticated without any network call.
// With stored credentials it verifies them by fetching the current
// profile (the server has no cheaper verification endpoint); success
// settles Authenticated with the freshly fetched profile, and any
// failure clears the store and settles Unauthenticated — booting again
// afterward behaves exactly like the no-token case.
func (m *Manager) Boot(ctx context.Context) State {
	credentials, _ := m.store.Load()
	if credentials == nil {
		m.setUnauthenticated()
		return StateUnauthenticated
	}

	apiSession := m.client.SessionFromToken(credentials.Token)
	apiSession.OnAuthFailure(m.forceLogout)

	profile, err := apiSession.CurrentUser(ctx)
	if err != nil {
		m.logger.Info("stored session rejected, clearing", "error", err)
		m.store.Clear()
		m.setUnauthenticated()
		return StateUnauthenticated
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.profile = profile
	m.apiSession = apiSession
	m.mu.Unlock()

	m.logger.Info("session verified", "username", profile.Username, "role", profile.Role)
	return StateAuthenticated
}

// BootOffline resolves the initial state from the token store without
// contacting the server. The stored username and role are trusted
// as-is; nothing the offline dashboard renders can act on a stale
// role, and the token is re-verified the next time a live boot runs.
func (m *Manager) BootOffline() State {
	credentials, _ := m.store.Load()
	if credentials == nil {
		m.setUnauthenticated()
		return StateUnauthenticated
	}

	apiSession := m.client.SessionFromToken(credentials.Token)
	apiSession.OnAuthFailure(m.forceLogout)

	m.mu.Lock()
	m.state = StateAuthenticated
	m.profile = &api.User{
		Username: credentials.Username,
		Role:     credentials.Role,
	}
	m.apiSession = apiSession
	m.mu.Unlock()
	return StateAuthenticated
}

// Login authenticates against the server and persists the resulting
// token. On success the state is Authenticated and the returned
// profile is the one embedded in the login response — Role is readable
// immediately with no further network call. A server-side credential
// rejection surfaces as ErrInvalidCredentials.
func (m *Manager) Login(ctx context.Context, username, password string) (*api.User, error) {
	result, err := m.client.Login(ctx, username, password)
	if err != nil {
		if api.IsAuth(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	credentials := &tokenstore.Credentials{
		ServerURL: m.client.ServerURL(),
		Token:     result.Token,
		Username:  result.User.Username,
		Role:      result.User.Role,
	}
	if err := m.store.Save(credentials); err != nil {
		// The session is still usable in-memory; persistence failure
		// just means the next invocation asks for a login again.
		m.logger.Warn("failed to persist session", "error", err)
	}

	apiSession := m.client.SessionFromToken(result.Token)
	apiSession.OnAuthFailure(m.forceLogout)

	profile := result.User

	m.mu.Lock()
	m.state = StateAuthenticated
	m.profile = &profile
	m.apiSession = apiSession
	m.mu.Unlock()

	return &profile, nil
}

// Logout clears the persisted token and resets to Unauthenticated.
// Synchronous and local only: the bearer token is stateless, so there
// is no server-side session to invalidate.
func (m *Manager) Logout() {
	m.store.Clear()
	m.setUnauthenticated()
}

// forceLogout is installed as the API session's auth-failure handler.
// Any 401 from any in-flight request lands here: the token is dead
// everywhere, so the store is cleared and the state reset regardless
// of which caller tripped first.
func (m *Manager) forceLogout() {
	m.logger.Info("server rejected token, forcing logout")
	m.store.Clear()
	m.setUnauthenticated()
}

func (m *Manager) setUnauthenticated() {
	m.mu.Lock()
	m.state = StateUnauthenticated
	m.profile = nil
	m.apiSession = nil
	m.mu.Unlock()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether a verified session is held.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// Role returns the authenticated user's role, or "" when
// unauthenticated.
func (m *Manager) Role() Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return ""
	}
	return Role(m.profile.Role)
}

// Profile returns a copy of the authenticated user's profile, or nil
// when unauthenticated. Pages never mutate the profile; it is owned
// exclusively by this package.
func (m *Manager) Profile() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return nil
	}
	profile := *m.profile
	return &profile
}

// Session returns the authenticated API session for issuing resource
// calls, or nil when unauthenticated.
func (m *Manager) Session() *api.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apiSession
}
