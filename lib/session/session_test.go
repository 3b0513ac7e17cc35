// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/lib/tokenstore"
)

// testServer is a fake stockroom backend covering the endpoints the
// session layer touches. validToken gates /auth/me and the resource
// endpoints; requests counts every handled request.
type testServer struct {
	*httptest.Server
	validToken string
	requests   atomic.Int32
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	server := &testServer{validToken: "tok-valid"}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		server.requests.Add(1)

		if request.URL.Path == "/api/auth/login" {
			var body map[string]string
			json.NewDecoder(request.Body).Decode(&body)
			if body["username"] != "admin" || body["password"] != "admin123" {
				writer.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(writer).Encode(map[string]string{"error": "Invalid credentials"})
				return
			}
			json.NewEncoder(writer).Encode(map[string]any{
				"access_token": server.validToken,
				"user": map[string]any{
					"id": 1, "username": "admin", "email": "admin@example.com", "role": "admin",
				},
			})
			return
		}

		if got := request.Header.Get("Authorization"); got != "Bearer "+server.validToken {
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"error": "Token has expired"})
			return
		}

		switch request.URL.Path {
		case "/api/auth/me":
			json.NewEncoder(writer).Encode(map[string]any{
				"user": map[string]any{
					"id": 1, "username": "admin", "email": "admin@example.com",
					"role": "admin", "is_active": true,
				},
			})
		case "/api/categories":
			json.NewEncoder(writer).Encode(map[string]any{"categories": []api.Category{}})
		default:
			http.NotFound(writer, request)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestManager(t *testing.T, server *testServer) (*Manager, *tokenstore.Store) {
	t.Helper()
	client, err := api.NewClient(api.ClientConfig{ServerURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	store := tokenstore.New(filepath.Join(t.TempDir(), "session.json"))
	return NewManager(client, store, nil), store
}

func TestBootWithoutToken(t *testing.T) {
	server := newTestServer(t)
	manager, _ := newTestManager(t, server)

	if got := manager.State(); got != StateBooting {
		t.Fatalf("initial state = %v, want booting", got)
	}

	if got := manager.Boot(context.Background()); got != StateUnauthenticated {
		t.Errorf("Boot = %v, want unauthenticated", got)
	}
	if manager.IsAuthenticated() {
		t.Error("IsAuthenticated = true without a token")
	}
	if got := server.requests.Load(); got != 0 {
		t.Errorf("boot without token issued %d network calls, want 0", got)
	}
}

func TestBootWithValidToken(t *testing.T) {
	server := newTestServer(t)
	manager, store := newTestManager(t, server)

	store.Save(&tokenstore.Credentials{
		ServerURL: server.URL,
		Token:     "tok-valid",
		Username:  "admin",
		Role:      "admin",
	})

	if got := manager.Boot(context.Background()); got != StateAuthenticated {
		t.Fatalf("Boot = %v, want authenticated", got)
	}
	if got := manager.Role(); got != RoleAdmin {
		t.Errorf("Role = %q, want admin", got)
	}
	profile := manager.Profile()
	if profile == nil || profile.Username != "admin" || !profile.IsActive {
		t.Errorf("Profile = %+v, want verified admin profile", profile)
	}
}

func TestBootWithInvalidTokenClearsStore(t *testing.T) {
	server := newTestServer(t)
	manager, store := newTestManager(t, server)

	store.Save(&tokenstore.Credentials{
		ServerURL: server.URL,
		Token:     "tok-stale",
	})

	if got := manager.Boot(context.Background()); got != StateUnauthenticated {
		t.Fatalf("Boot = %v, want unauthenticated", got)
	}

	credentials, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if credentials != nil {
		t.Errorf("store still holds %+v after failed verification", credentials)
	}

	// Idempotence: a second boot behaves exactly like the no-token
	// case — no network calls.
	before := server.requests.Load()
	manager2, _ := newTestManager(t, server)
	manager2.store = store
	if got := manager2.Boot(context.Background()); got != StateUnauthenticated {
		t.Errorf("second Boot = %v, want unauthenticated", got)
	}
	if got := server.requests.Load(); got != before {
		t.Errorf("second boot issued %d network calls, want 0", got-before)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	server := newTestServer(t)
	manager, store := newTestManager(t, server)
	manager.Boot(context.Background())

	profile, err := manager.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if profile.Role != "admin" {
		t.Errorf("profile role = %q, want admin", profile.Role)
	}

	// Role from the login response, no intervening network call.
	before := server.requests.Load()
	if got := manager.Role(); got != RoleAdmin {
		t.Errorf("Role = %q, want admin", got)
	}
	if got := server.requests.Load(); got != before {
		t.Error("reading Role after login issued a network call")
	}

	credentials, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if credentials == nil || credentials.Token != "tok-valid" {
		t.Errorf("persisted credentials = %+v, want token from login response", credentials)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := newTestServer(t)
	manager, _ := newTestManager(t, server)
	manager.Boot(context.Background())

	_, err := manager.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
	if manager.IsAuthenticated() {
		t.Error("authenticated after rejected login")
	}
}

func TestLogout(t *testing.T) {
	server := newTestServer(t)
	manager, store := newTestManager(t, server)
	manager.Boot(context.Background())

	if _, err := manager.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	before := server.requests.Load()
	manager.Logout()

	if manager.IsAuthenticated() {
		t.Error("authenticated after logout")
	}
	if got := manager.Role(); got != "" {
		t.Errorf("Role = %q after logout, want empty", got)
	}
	if credentials, _ := store.Load(); credentials != nil {
		t.Errorf("store still holds %+v after logout", credentials)
	}
	// Stateless bearer token: logout never calls the server.
	if got := server.requests.Load(); got != before {
		t.Error("logout issued a network call")
	}
}

func TestForcedLogoutOn401(t *testing.T) {
	server := newTestServer(t)
	manager, store := newTestManager(t, server)
	manager.Boot(context.Background())

	if _, err := manager.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// The server revokes the token out from under the client.
	server.validToken = "tok-rotated"

	apiSession := manager.Session()
	_, err := apiSession.ListCategories(context.Background())
	if !api.IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}

	if manager.IsAuthenticated() {
		t.Error("still authenticated after 401")
	}
	if credentials, _ := store.Load(); credentials != nil {
		t.Errorf("store still holds %+v after forced logout", credentials)
	}
	if got := manager.Session(); got != nil {
		t.Error("Session() still returns a session after forced logout")
	}
}

func TestBootOffline(t *testing.T) {
	server := newTestServer(t)
	manager, store := newTestManager(t, server)

	if got := manager.BootOffline(); got != StateUnauthenticated {
		t.Fatalf("BootOffline without token = %v, want unauthenticated", got)
	}

	store.Save(&tokenstore.Credentials{
		ServerURL: server.URL,
		Token:     "tok-valid",
		Username:  "admin",
		Role:      "admin",
	})

	before := server.requests.Load()
	if got := manager.BootOffline(); got != StateAuthenticated {
		t.Fatalf("BootOffline = %v, want authenticated", got)
	}
	if got := server.requests.Load(); got != before {
		t.Error("offline boot issued a network call")
	}
	if got := manager.Role(); got != RoleAdmin {
		t.Errorf("Role = %q, want admin (trusted from store)", got)
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "staff", "user"} {
		if _, err := ParseRole(valid); err != nil {
			t.Errorf("ParseRole(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseRole("root"); err == nil {
		t.Error("ParseRole accepted an unknown role")
	}
}
