// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashui implements the interactive terminal dashboard: a
// bubbletea program with a role-gated sidebar, per-page data tables
// with fuzzy filtering, a login form for unauthenticated sessions,
// and an offline mode that serves the last cached snapshot when the
// server is unreachable.
package dashui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/lib/localstate"
	"github.com/stockroomhq/stockroom/lib/navigation"
	"github.com/stockroomhq/stockroom/lib/session"
)

// Options configures a dashboard Model.
type Options struct {
	// Theme is the color palette. The zero value falls back to
	// DefaultTheme.
	Theme Theme

	// Timeout bounds every API request issued by the dashboard.
	Timeout time.Duration

	// Cache is the snapshot cache used for offline fallback. Nil
	// disables snapshotting.
	Cache *localstate.SnapshotCache

	// StartPage is the page opened after login. Unknown or empty
	// values open the dashboard page.
	StartPage navigation.Page

	// Offline forces snapshot-only mode: no network requests are
	// issued and the last cached snapshot is served directly.
	Offline bool
}

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	manager *session.Manager
	source  DataSource
	theme   Theme
	keys    KeyMap
	timeout time.Duration
	cache   *localstate.SnapshotCache
	offline bool // Forced offline mode (no live source at all).

	width  int
	height int
	ready  bool

	pages      []navigation.Page
	activePage navigation.Page

	table  Table
	data   pageData
	filter FilterModel

	loading     bool
	degraded    bool // Serving snapshot data after a live fetch failed.
	snapshotAge time.Time
	statusError string
	showHelp    bool

	login loginForm

	// Accumulated raw data for the offline snapshot. Updated on
	// successful live loads and written back through the cache.
	snapshot localstate.Snapshot
}

// pageLoadedMsg delivers the result of an asynchronous page fetch.
type pageLoadedMsg struct {
	page     navigation.Page
	data     pageData
	err      error
	fallback bool      // Data came from the snapshot cache.
	age      time.Time // Snapshot timestamp when fallback is true.
}

// loginDoneMsg delivers the result of an asynchronous login attempt.
type loginDoneMsg struct {
	user *api.User
	err  error
}

// New builds a dashboard Model over an already-booted session
// manager. When the manager is authenticated the dashboard opens
// directly on the start page; otherwise it shows the login form.
func New(manager *session.Manager, options Options) Model {
	theme := options.Theme
	if theme.NormalText == "" {
		theme = DefaultTheme
	}
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	startPage := options.StartPage
	if !navigation.Known(startPage) {
		startPage = navigation.PageDashboard
	}

	model := Model{
		manager:    manager,
		theme:      theme,
		keys:       DefaultKeyMap,
		timeout:    timeout,
		cache:      options.Cache,
		offline:    options.Offline,
		activePage: startPage,
		login:      newLoginForm(),
	}

	if options.Offline {
		model.source = nil // Resolved lazily from the cache.
	} else if manager.IsAuthenticated() {
		model.source = manager.Session()
	}
	if manager.IsAuthenticated() {
		model.enterAuthenticated()
	}
	return model
}

// enterAuthenticated recomputes the role-gated sidebar and clamps the
// active page to one the role may open.
func (model *Model) enterAuthenticated() {
	role := model.manager.Role()
	model.pages = navigation.Visible(role)
	if navigation.Guard(session.StateAuthenticated, role, model.activePage) != navigation.Allow {
		model.activePage = navigation.PageDashboard
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	if model.manager.IsAuthenticated() {
		return model.loadPageCmd(model.activePage)
	}
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)

	case submitMsg:
		return model, model.loginCmd(message.username, message.password)

	case loginDoneMsg:
		return model.handleLoginDone(message)

	case pageLoadedMsg:
		return model.handlePageLoaded(message)
	}

	if !model.manager.IsAuthenticated() {
		var cmd tea.Cmd
		model.login, cmd = model.login.Update(message)
		return model, cmd
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The login form owns all input while unauthenticated, except
	// ctrl+c which always quits.
	if !model.manager.IsAuthenticated() {
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		var cmd tea.Cmd
		model.login, cmd = model.login.Update(message)
		return model, cmd
	}

	if model.showHelp {
		// Any key closes the help overlay.
		model.showHelp = false
		return model, nil
	}

	if model.filter.Active {
		return model.handleFilterKey(message)
	}

	switch {
	case keyMatches(message, model.keys.Quit):
		return model, tea.Quit

	case keyMatches(message, model.keys.Help):
		model.showHelp = true

	case keyMatches(message, model.keys.Up):
		model.table.MoveUp(1)

	case keyMatches(message, model.keys.Down):
		model.table.MoveDown(1)

	case keyMatches(message, model.keys.PageUp):
		model.table.MoveUp(model.tableHeight())

	case keyMatches(message, model.keys.PageDown):
		model.table.MoveDown(model.tableHeight())

	case keyMatches(message, model.keys.Home):
		model.table.GotoTop()

	case keyMatches(message, model.keys.End):
		model.table.GotoBottom()

	case keyMatches(message, model.keys.NextPage):
		return model.switchPageBy(1)

	case keyMatches(message, model.keys.PrevPage):
		return model.switchPageBy(-1)

	case keyMatches(message, model.keys.FilterActivate):
		model.filter.Active = true

	case keyMatches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			model.applyFilter()
		}

	case keyMatches(message, model.keys.Refresh):
		model.degraded = false
		model.statusError = ""
		model.loading = true
		return model, model.loadPageCmd(model.activePage)

	default:
		// Number keys jump straight to a sidebar entry.
		if len(message.Runes) == 1 {
			digit := message.Runes[0]
			if digit >= '1' && digit <= '9' {
				index := int(digit - '1')
				if index < len(model.pages) {
					return model.switchPage(model.pages[index])
				}
			}
		}
	}
	return model, nil
}

func (model Model) handleFilterKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit

	case tea.KeyEsc:
		model.filter.Clear()
		model.applyFilter()
		return model, nil

	case tea.KeyEnter:
		model.filter.Active = false
		return model, nil

	case tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.applyFilter()
		}
		return model, nil

	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		model.applyFilter()
		return model, nil
	}
	return model, nil
}

// applyFilter refreshes the table rows from the unfiltered page data
// through the current filter.
func (model *Model) applyFilter() {
	if model.filter.Input == "" {
		model.table.SetRows(model.data.Rows)
		return
	}
	scored := model.filter.Apply(model.data.Rows)
	rows := make([]Row, len(scored))
	for index, result := range scored {
		rows[index] = result.Row
		rows[index].MatchPositions = result.FirstCellPositions
	}
	model.table.SetRows(rows)
	model.table.GotoTop()
}

// switchPageBy moves to the adjacent sidebar entry, wrapping around.
func (model Model) switchPageBy(delta int) (tea.Model, tea.Cmd) {
	if len(model.pages) == 0 {
		return model, nil
	}
	current := 0
	for index, page := range model.pages {
		if page == model.activePage {
			current = index
			break
		}
	}
	next := (current + delta + len(model.pages)) % len(model.pages)
	return model.switchPage(model.pages[next])
}

// switchPage runs the navigation guard and, if the page is allowed,
// makes it active and starts loading its data.
func (model Model) switchPage(page navigation.Page) (tea.Model, tea.Cmd) {
	switch navigation.Guard(model.manager.State(), model.manager.Role(), page) {
	case navigation.RedirectLogin:
		return model, nil
	case navigation.RedirectDashboard:
		page = navigation.PageDashboard
	}

	if page == model.activePage && !model.loading {
		return model, nil
	}
	model.activePage = page
	model.filter.Clear()
	model.statusError = ""
	model.loading = true
	model.table = Table{}
	return model, model.loadPageCmd(page)
}

// loadPageCmd fetches a page's data in the background. On transport
// errors (or in forced offline mode) it falls back to the snapshot
// cache when the page's data is cached.
func (model Model) loadPageCmd(page navigation.Page) tea.Cmd {
	source := model.source
	theme := model.theme
	timeout := model.timeout
	cache := model.cache
	forcedOffline := model.offline

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if !forcedOffline && source != nil {
			data, err := loadPage(ctx, source, theme, page)
			if err == nil {
				return pageLoadedMsg{page: page, data: data}
			}
			if !api.IsTransport(err) || cache == nil {
				return pageLoadedMsg{page: page, err: err}
			}
			// Fall through to the snapshot cache.
		}

		if cache == nil {
			return pageLoadedMsg{page: page, err: errors.New("offline and no snapshot cache configured")}
		}
		snapshot, err := cache.Get()
		if err != nil {
			return pageLoadedMsg{page: page, err: err}
		}
		if snapshot == nil {
			return pageLoadedMsg{page: page, err: errors.New("offline and no snapshot cached yet")}
		}

		fallbackSource := &snapshotSource{snapshot: snapshot}
		data, err := loadPage(ctx, fallbackSource, theme, page)
		if err != nil {
			return pageLoadedMsg{page: page, err: err}
		}
		return pageLoadedMsg{page: page, data: data, fallback: true, age: snapshot.FetchedAt}
	}
}

func (model Model) handlePageLoaded(message pageLoadedMsg) (tea.Model, tea.Cmd) {
	if message.page != model.activePage {
		// A stale fetch finished after the user moved on.
		return model, nil
	}
	model.loading = false

	if message.err != nil {
		if api.IsAuth(message.err) {
			// The API session already fired its auth-failure hook and
			// the manager dropped the stored token. Return to login.
			model.login = newLoginForm()
			model.login.notice = "Session expired — sign in again"
			return model, nil
		}
		model.statusError = message.err.Error()
		return model, nil
	}

	model.data = message.data
	model.degraded = message.fallback
	model.snapshotAge = message.age
	model.statusError = ""
	model.table = Table{Columns: message.data.Columns}
	model.table.SetRows(message.data.Rows)
	model.applyFilter()

	if !message.fallback {
		model.updateSnapshot(message.data)
	}
	return model, nil
}

// updateSnapshot folds freshly-fetched raw data into the accumulated
// snapshot and persists it for offline use. Best effort: a failed
// write only costs the offline fallback.
func (model *Model) updateSnapshot(data pageData) {
	if model.cache == nil {
		return
	}
	changed := false
	if data.rawInventory != nil {
		model.snapshot.Inventory = data.rawInventory
		changed = true
	}
	if data.rawOrders != nil {
		model.snapshot.Orders = data.rawOrders
		changed = true
	}
	if data.rawLowStock != nil {
		model.snapshot.LowStock = data.rawLowStock
		changed = true
	}
	if data.rawValue != nil {
		model.snapshot.InventoryValue = data.rawValue
		changed = true
	}
	if data.rawStats != nil {
		model.snapshot.Stats = data.rawStats
		changed = true
	}
	if !changed {
		return
	}
	model.snapshot.FetchedAt = time.Now().UTC()
	_ = model.cache.Put(&model.snapshot)
}

// loginCmd runs a login attempt in the background.
func (model Model) loginCmd(username, password string) tea.Cmd {
	manager := model.manager
	timeout := model.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := manager.Login(ctx, username, password)
		return loginDoneMsg{user: user, err: err}
	}
}

func (model Model) handleLoginDone(message loginDoneMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		if errors.Is(message.err, session.ErrInvalidCredentials) {
			model.login.fail("Invalid username or password")
		} else {
			model.login.fail(fmt.Sprintf("Login failed: %v", message.err))
		}
		return model, nil
	}

	model.source = model.manager.Session()
	model.enterAuthenticated()
	model.loading = true
	return model, model.loadPageCmd(model.activePage)
}
