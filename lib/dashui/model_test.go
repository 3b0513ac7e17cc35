// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/lib/localstate"
	"github.com/stockroomhq/stockroom/lib/navigation"
	"github.com/stockroomhq/stockroom/lib/session"
	"github.com/stockroomhq/stockroom/lib/tokenstore"
)

// newTestManager builds a manager authenticated as the given role, or
// unauthenticated when role is empty. The backing server only serves
// the auth endpoints; dashboard data comes from fake sources in these
// tests.
func newTestManager(t *testing.T, role string) *session.Manager {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(writer).Encode(map[string]any{
				"access_token": "tok-test",
				"user": map[string]any{
					"id": 1, "username": "tester", "email": "tester@example.com",
					"role": role, "is_active": true,
				},
			})
		case "/api/auth/me":
			json.NewEncoder(writer).Encode(map[string]any{
				"user": map[string]any{
					"id": 1, "username": "tester", "email": "tester@example.com",
					"role": role, "is_active": true,
				},
			})
		default:
			http.NotFound(writer, request)
		}
	}))
	t.Cleanup(server.Close)

	client, err := api.NewClient(api.ClientConfig{ServerURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	store := tokenstore.New(filepath.Join(t.TempDir(), "session.json"))
	manager := session.NewManager(client, store, nil)
	manager.Boot(context.Background())

	if role != "" {
		if _, err := manager.Login(context.Background(), "tester", "pw"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
	}
	return manager
}

func sized(t *testing.T, model Model) Model {
	t.Helper()
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func keyMsg(runes string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)}
}

func TestUnauthenticatedStartsOnLoginForm(t *testing.T) {
	manager := newTestManager(t, "")
	model := New(manager, Options{})

	if cmd := model.Init(); cmd != nil {
		t.Error("unauthenticated init must not fetch data")
	}

	model = sized(t, model)
	view := model.View()
	if !strings.Contains(view, "Stockroom") {
		t.Error("login view missing application title")
	}
	if strings.Contains(view, "Dashboard") {
		t.Error("sidebar rendered before authentication")
	}
}

func TestSidebarIsRoleGated(t *testing.T) {
	for _, test := range []struct {
		role string
		want []navigation.Page
	}{
		{"admin", navigation.Visible(session.RoleAdmin)},
		{"staff", navigation.Visible(session.RoleStaff)},
		{"user", navigation.Visible(session.RoleUser)},
	} {
		manager := newTestManager(t, test.role)
		model := New(manager, Options{})
		if !reflect.DeepEqual(model.pages, test.want) {
			t.Errorf("%s pages = %v, want %v", test.role, model.pages, test.want)
		}
	}
}

func TestStartPageClampedForRole(t *testing.T) {
	manager := newTestManager(t, "user")
	model := New(manager, Options{StartPage: navigation.PageAdmin})

	if model.activePage != navigation.PageDashboard {
		t.Fatalf("activePage = %q, want dashboard (admin denied for role user)", model.activePage)
	}
}

func TestSwitchPageDeniedFallsBackToDashboard(t *testing.T) {
	manager := newTestManager(t, "staff")
	model := sized(t, New(manager, Options{}))
	model.activePage = navigation.PageOrders
	model.loading = false

	updated, _ := model.switchPage(navigation.PageAdmin)
	model = updated.(Model)
	if model.activePage != navigation.PageDashboard {
		t.Fatalf("activePage = %q, want dashboard after denied switch", model.activePage)
	}
}

func TestPageLoadedPopulatesTable(t *testing.T) {
	manager := newTestManager(t, "admin")
	model := sized(t, New(manager, Options{}))
	model.loading = true

	updated, _ := model.Update(pageLoadedMsg{
		page: model.activePage,
		data: pageData{
			Columns: []string{"NAME"},
			Rows:    []Row{makeRow("Widget"), makeRow("Sprocket")},
			Note:    "2 items",
		},
	})
	model = updated.(Model)

	if model.loading {
		t.Error("loading flag still set after data arrived")
	}
	if len(model.table.Rows) != 2 {
		t.Fatalf("table has %d rows, want 2", len(model.table.Rows))
	}
	if model.degraded {
		t.Error("live data marked as degraded")
	}
}

func TestStalePageLoadIgnored(t *testing.T) {
	manager := newTestManager(t, "admin")
	model := sized(t, New(manager, Options{}))
	model.activePage = navigation.PageOrders

	updated, _ := model.Update(pageLoadedMsg{
		page: navigation.PageInventory,
		data: pageData{Columns: []string{"NAME"}, Rows: []Row{makeRow("stale")}},
	})
	model = updated.(Model)

	if len(model.table.Rows) != 0 {
		t.Fatal("stale fetch result applied to the wrong page")
	}
}

func TestAuthErrorReturnsToLogin(t *testing.T) {
	manager := newTestManager(t, "admin")
	model := sized(t, New(manager, Options{}))

	// Simulate the transport layer reporting a dead token; the session
	// manager's auth-failure hook has already flipped the state.
	manager.Logout()
	updated, _ := model.Update(pageLoadedMsg{
		page: model.activePage,
		err:  &api.Error{StatusCode: http.StatusUnauthorized, Message: "Token has expired"},
	})
	model = updated.(Model)

	if model.login.notice == "" {
		t.Error("login form should explain the forced logout")
	}
	view := model.View()
	if strings.Contains(view, "Dashboard") {
		t.Error("main view still rendered after forced logout")
	}
}

func TestFetchErrorShownInStatusBar(t *testing.T) {
	manager := newTestManager(t, "admin")
	model := sized(t, New(manager, Options{}))

	updated, _ := model.Update(pageLoadedMsg{
		page: model.activePage,
		err:  &api.Error{StatusCode: http.StatusInternalServerError, Message: "boom"},
	})
	model = updated.(Model)

	if !strings.Contains(model.statusError, "boom") {
		t.Fatalf("statusError = %q, want the server message", model.statusError)
	}
	if !strings.Contains(model.View(), "boom") {
		t.Error("status bar does not surface the error")
	}
}

func TestOfflineFallbackServesSnapshot(t *testing.T) {
	manager := newTestManager(t, "admin")
	cache := localstate.NewSnapshotCache(filepath.Join(t.TempDir(), "snapshot.bin"))
	fetchedAt := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	if err := cache.Put(&localstate.Snapshot{
		FetchedAt: fetchedAt,
		Inventory: []api.InventoryItem{{ID: 1, Name: "Widget", SKU: "WID-001", Quantity: 5}},
	}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	model := sized(t, New(manager, Options{Cache: cache, Offline: true, StartPage: navigation.PageInventory}))

	message := model.loadPageCmd(navigation.PageInventory)()
	loaded, ok := message.(pageLoadedMsg)
	if !ok {
		t.Fatalf("message type = %T, want pageLoadedMsg", message)
	}
	if loaded.err != nil {
		t.Fatalf("offline load failed: %v", loaded.err)
	}
	if !loaded.fallback {
		t.Error("snapshot data not flagged as fallback")
	}
	if !loaded.age.Equal(fetchedAt) {
		t.Errorf("snapshot age = %v, want %v", loaded.age, fetchedAt)
	}
	if len(loaded.data.Rows) != 1 || loaded.data.Rows[0].Cells[0].Text != "Widget" {
		t.Fatalf("snapshot rows = %+v", loaded.data.Rows)
	}

	updated, _ := model.Update(loaded)
	model = updated.(Model)
	if !model.degraded {
		t.Error("model not marked degraded after snapshot fallback")
	}
	if !strings.Contains(model.View(), "Offline") {
		t.Error("offline notice missing from view")
	}
}

func TestOfflineWithoutSnapshotReportsError(t *testing.T) {
	manager := newTestManager(t, "admin")
	cache := localstate.NewSnapshotCache(filepath.Join(t.TempDir(), "snapshot.bin"))
	model := sized(t, New(manager, Options{Cache: cache, Offline: true}))

	message := model.loadPageCmd(navigation.PageInventory)()
	loaded := message.(pageLoadedMsg)
	if loaded.err == nil {
		t.Fatal("expected an error with an empty snapshot cache")
	}
}

func TestLiveFetchUpdatesSnapshot(t *testing.T) {
	manager := newTestManager(t, "admin")
	cache := localstate.NewSnapshotCache(filepath.Join(t.TempDir(), "snapshot.bin"))
	model := sized(t, New(manager, Options{Cache: cache}))
	model.activePage = navigation.PageInventory

	items := []api.InventoryItem{{ID: 1, Name: "Widget", SKU: "WID-001", Quantity: 5}}
	updated, _ := model.Update(pageLoadedMsg{
		page: navigation.PageInventory,
		data: pageData{
			Columns:      []string{"NAME"},
			Rows:         []Row{makeRow("Widget")},
			rawInventory: items,
		},
	})
	model = updated.(Model)

	snapshot, err := cache.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if snapshot == nil || len(snapshot.Inventory) != 1 {
		t.Fatalf("snapshot = %+v, want the fetched inventory", snapshot)
	}
	if snapshot.FetchedAt.IsZero() {
		t.Error("snapshot timestamp not set")
	}
}

func TestFilterKeysNarrowTable(t *testing.T) {
	manager := newTestManager(t, "admin")
	model := sized(t, New(manager, Options{}))

	updated, _ := model.Update(pageLoadedMsg{
		page: model.activePage,
		data: pageData{
			Columns: []string{"NAME"},
			Rows:    []Row{makeRow("Widget"), makeRow("Sprocket")},
		},
	})
	model = updated.(Model)

	updated, _ = model.Update(keyMsg("/"))
	model = updated.(Model)
	if !model.filter.Active {
		t.Fatal("/ did not activate the filter")
	}

	updated, _ = model.Update(keyMsg("wid"))
	model = updated.(Model)
	if len(model.table.Rows) != 1 || model.table.Rows[0].Cells[0].Text != "Widget" {
		t.Fatalf("filtered rows = %+v, want only Widget", model.table.Rows)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = updated.(Model)
	if model.filter.Input != "" {
		t.Error("esc did not clear the filter")
	}
	if len(model.table.Rows) != 2 {
		t.Fatalf("rows = %d after clearing filter, want 2", len(model.table.Rows))
	}
}

func TestHelpOverlayToggle(t *testing.T) {
	manager := newTestManager(t, "admin")
	model := sized(t, New(manager, Options{}))

	updated, _ := model.Update(keyMsg("?"))
	model = updated.(Model)
	if !model.showHelp {
		t.Fatal("? did not open help")
	}
	if !strings.Contains(model.View(), "filter") {
		t.Error("help overlay missing key binding documentation")
	}

	updated, _ = model.Update(keyMsg("x"))
	model = updated.(Model)
	if model.showHelp {
		t.Fatal("keypress did not close help")
	}
}

func TestNumberKeySwitchesPage(t *testing.T) {
	manager := newTestManager(t, "admin")
	model := sized(t, New(manager, Options{}))

	// Entry 2 in the admin sidebar.
	target := model.pages[1]
	updated, _ := model.Update(keyMsg("2"))
	model = updated.(Model)
	if model.activePage != target {
		t.Fatalf("activePage = %q, want %q", model.activePage, target)
	}
	if !model.loading {
		t.Error("page switch did not start a load")
	}
}
