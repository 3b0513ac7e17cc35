// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/lib/localstate"
	"github.com/stockroomhq/stockroom/lib/navigation"
)

// DataSource is the slice of the inventory API the dashboard reads.
// *api.Session satisfies it; tests and the offline snapshot source
// provide fakes.
type DataSource interface {
	ListInventory(ctx context.Context, options api.ListInventoryOptions) (*api.InventoryPage, error)
	ListOrders(ctx context.Context, options api.ListOrdersOptions) (*api.OrderPage, error)
	ListCategories(ctx context.Context) ([]api.Category, error)
	ListVendors(ctx context.Context) ([]api.Vendor, error)
	ListPurchaseOrders(ctx context.Context) ([]api.PurchaseOrder, error)
	ListUsers(ctx context.Context) ([]api.User, error)
	SystemStats(ctx context.Context) (*api.SystemStats, error)
	LowStock(ctx context.Context) ([]api.InventoryItem, error)
	InventoryValue(ctx context.Context) (*api.InventoryValue, error)
}

// ErrNotCached is returned by the snapshot source for pages whose
// data is not part of the offline snapshot.
var ErrNotCached = errors.New("not available offline")

// pageData is the content of one rendered page: table columns and
// rows plus an optional one-line note shown above the table (totals,
// snapshot age, degradation notices).
type pageData struct {
	Columns []string
	Rows    []Row
	Note    string

	// Raw server responses worth folding into the offline snapshot.
	// Only set by the loaders whose data the snapshot captures.
	rawInventory []api.InventoryItem
	rawOrders    []api.Order
	rawLowStock  []api.InventoryItem
	rawValue     *api.InventoryValue
	rawStats     *api.SystemStats
}

// loadPage fetches and shapes the data for a page. The returned rows
// carry semantic colors from the theme so the render pass stays a
// pure layout concern.
func loadPage(ctx context.Context, source DataSource, theme Theme, page navigation.Page) (pageData, error) {
	switch page {
	case navigation.PageDashboard:
		return loadDashboard(ctx, source, theme)
	case navigation.PageInventory:
		return loadInventory(ctx, source, theme, false)
	case navigation.PageProducts:
		return loadInventory(ctx, source, theme, true)
	case navigation.PageOrders:
		return loadOrders(ctx, source, theme)
	case navigation.PageCategories:
		return loadCategories(ctx, source)
	case navigation.PageVendors:
		return loadVendors(ctx, source)
	case navigation.PagePurchaseOrders:
		return loadPurchaseOrders(ctx, source, theme)
	case navigation.PageReports:
		return loadReports(ctx, source, theme)
	case navigation.PageAdmin:
		return loadAdmin(ctx, source)
	case navigation.PageSettings:
		return loadSettings()
	}
	return pageData{}, fmt.Errorf("unknown page %q", page)
}

func loadDashboard(ctx context.Context, source DataSource, theme Theme) (pageData, error) {
	value, err := source.InventoryValue(ctx)
	if err != nil {
		return pageData{}, err
	}
	lowStock, err := source.LowStock(ctx)
	if err != nil {
		return pageData{}, err
	}

	data := pageData{
		Columns:     []string{"LOW STOCK ITEM", "SKU", "QTY", "MIN", "STATUS"},
		Note:        fmt.Sprintf("Inventory value %.2f across %d categories · %d items need restocking", value.TotalValue, len(value.CategoryBreakdown), len(lowStock)),
		rawLowStock: lowStock,
		rawValue:    value,
	}
	for _, item := range lowStock {
		data.Rows = append(data.Rows, Row{Cells: []Cell{
			{Text: item.Name},
			{Text: item.SKU},
			{Text: fmt.Sprintf("%d", item.Quantity)},
			{Text: fmt.Sprintf("%d", item.MinStockLevel)},
			{Text: item.Status, Color: theme.StockStatusColor(item.Status)},
		}})
	}
	return data, nil
}

// loadInventory builds the inventory page, or the products page when
// activeOnly is set (products is the active-items view of the same
// data set).
func loadInventory(ctx context.Context, source DataSource, theme Theme, activeOnly bool) (pageData, error) {
	// The table is filtered client-side, so pull a large page rather
	// than mirroring the server's pagination in the UI.
	page, err := source.ListInventory(ctx, api.ListInventoryOptions{PerPage: 500})
	if err != nil {
		return pageData{}, err
	}

	items := page.Items
	if activeOnly {
		items = items[:0:0]
		for _, item := range page.Items {
			if item.IsActive {
				items = append(items, item)
			}
		}
	}

	note := fmt.Sprintf("%d items", page.Pagination.Total)
	if activeOnly {
		note = fmt.Sprintf("%d active items", len(items))
	}
	data := pageData{
		Columns:      []string{"NAME", "SKU", "CATEGORY", "QTY", "PRICE", "STATUS"},
		Note:         note,
		rawInventory: page.Items,
	}
	for _, item := range items {
		data.Rows = append(data.Rows, Row{Cells: []Cell{
			{Text: item.Name},
			{Text: item.SKU},
			{Text: item.Category},
			{Text: fmt.Sprintf("%d", item.Quantity)},
			{Text: fmt.Sprintf("%.2f", item.Price)},
			{Text: item.Status, Color: theme.StockStatusColor(item.Status)},
		}})
	}
	return data, nil
}

func loadOrders(ctx context.Context, source DataSource, theme Theme) (pageData, error) {
	page, err := source.ListOrders(ctx, api.ListOrdersOptions{PerPage: 500})
	if err != nil {
		return pageData{}, err
	}

	data := pageData{
		Columns:   []string{"CUSTOMER", "ITEMS", "TOTAL", "STATUS", "CREATED"},
		Note:      fmt.Sprintf("%d orders", page.Pagination.Total),
		rawOrders: page.Orders,
	}
	for _, order := range page.Orders {
		data.Rows = append(data.Rows, Row{Cells: []Cell{
			{Text: order.CustomerName},
			{Text: fmt.Sprintf("%d", order.ItemCount)},
			{Text: fmt.Sprintf("%.2f", order.Total)},
			{Text: order.Status, Color: theme.OrderStatusColor(order.Status)},
			{Text: order.CreatedAt},
		}})
	}
	return data, nil
}

func loadCategories(ctx context.Context, source DataSource) (pageData, error) {
	categories, err := source.ListCategories(ctx)
	if err != nil {
		return pageData{}, err
	}

	data := pageData{Columns: []string{"NAME", "PRODUCTS", "DESCRIPTION"}}
	for _, category := range categories {
		data.Rows = append(data.Rows, Row{Cells: []Cell{
			{Text: category.Name},
			{Text: fmt.Sprintf("%d", category.ProductCount)},
			{Text: category.Description},
		}})
	}
	return data, nil
}

func loadVendors(ctx context.Context, source DataSource) (pageData, error) {
	vendors, err := source.ListVendors(ctx)
	if err != nil {
		return pageData{}, err
	}

	data := pageData{Columns: []string{"NAME", "CONTACT", "EMAIL", "PHONE"}}
	for _, vendor := range vendors {
		data.Rows = append(data.Rows, Row{Cells: []Cell{
			{Text: vendor.Name},
			{Text: vendor.ContactPerson},
			{Text: vendor.Email},
			{Text: vendor.Phone},
		}})
	}
	return data, nil
}

func loadPurchaseOrders(ctx context.Context, source DataSource, theme Theme) (pageData, error) {
	orders, err := source.ListPurchaseOrders(ctx)
	if err != nil {
		return pageData{}, err
	}

	data := pageData{Columns: []string{"REFERENCE", "VENDOR", "ITEMS", "TOTAL", "STATUS"}}
	for _, po := range orders {
		data.Rows = append(data.Rows, Row{Cells: []Cell{
			{Text: po.ReferenceNumber},
			{Text: po.VendorName},
			{Text: fmt.Sprintf("%d", po.ItemCount)},
			{Text: fmt.Sprintf("%.2f", po.Total)},
			{Text: po.Status, Color: theme.OrderStatusColor(po.Status)},
		}})
	}
	return data, nil
}

func loadReports(ctx context.Context, source DataSource, theme Theme) (pageData, error) {
	value, err := source.InventoryValue(ctx)
	if err != nil {
		return pageData{}, err
	}

	data := pageData{
		Columns: []string{"CATEGORY", "VALUE"},
		Note:    fmt.Sprintf("Total inventory value %.2f", value.TotalValue),
	}
	for _, slice := range value.CategoryBreakdown {
		data.Rows = append(data.Rows, Row{Cells: []Cell{
			{Text: slice.Category},
			{Text: fmt.Sprintf("%.2f", slice.Value)},
		}})
	}
	return data, nil
}

func loadAdmin(ctx context.Context, source DataSource) (pageData, error) {
	stats, err := source.SystemStats(ctx)
	if err != nil {
		return pageData{}, err
	}
	users, err := source.ListUsers(ctx)
	if err != nil {
		return pageData{}, err
	}

	data := pageData{
		Columns: []string{"USERNAME", "EMAIL", "ROLE", "ACTIVE", "LAST LOGIN"},
		Note: fmt.Sprintf("%d users · %d products · %d orders · %d low stock",
			stats.TotalUsers, stats.TotalProducts, stats.TotalOrders, stats.LowStockItems),
		rawStats: stats,
	}
	for _, user := range users {
		data.Rows = append(data.Rows, Row{Cells: []Cell{
			{Text: user.Username},
			{Text: user.Email},
			{Text: user.Role},
			{Text: fmt.Sprintf("%t", user.IsActive)},
			{Text: user.LastLogin},
		}})
	}
	return data, nil
}

// loadSettings reads the local settings file. Settings are local-first
// in the TUI: the server push lives in the CLI's admin group, and the
// dashboard only displays the effective values.
func loadSettings() (pageData, error) {
	store := localstate.NewSettingsStore("")
	settings, err := store.Get()
	if err != nil {
		return pageData{}, err
	}

	data := pageData{Columns: []string{"SETTING", "VALUE"}}
	if settings == nil {
		data.Note = "No saved settings; showing defaults"
		settings = &api.SystemSettings{
			LowStockThreshold: 10,
			BackupFrequency:   "daily",
			ItemsPerPage:      20,
		}
	}
	data.Rows = []Row{
		{Cells: []Cell{{Text: "Low stock threshold"}, {Text: fmt.Sprintf("%d", settings.LowStockThreshold)}}},
		{Cells: []Cell{{Text: "Auto reorder"}, {Text: fmt.Sprintf("%t", settings.AutoReorder)}}},
		{Cells: []Cell{{Text: "Email notifications"}, {Text: fmt.Sprintf("%t", settings.EmailNotifications)}}},
		{Cells: []Cell{{Text: "Backup frequency"}, {Text: settings.BackupFrequency}}},
		{Cells: []Cell{{Text: "Items per page"}, {Text: fmt.Sprintf("%d", settings.ItemsPerPage)}}},
	}
	return data, nil
}

// snapshotSource serves cached data from the last good snapshot when
// the server is unreachable. Only the data sets the snapshot captures
// are available; everything else returns ErrNotCached.
type snapshotSource struct {
	snapshot *localstate.Snapshot
}

// FetchedAt reports when the underlying snapshot was taken.
func (s *snapshotSource) FetchedAt() time.Time {
	return s.snapshot.FetchedAt
}

func (s *snapshotSource) ListInventory(ctx context.Context, options api.ListInventoryOptions) (*api.InventoryPage, error) {
	return &api.InventoryPage{
		Items: s.snapshot.Inventory,
		Pagination: api.Pagination{
			Page:  1,
			Pages: 1,
			Total: len(s.snapshot.Inventory),
		},
	}, nil
}

func (s *snapshotSource) ListOrders(ctx context.Context, options api.ListOrdersOptions) (*api.OrderPage, error) {
	return &api.OrderPage{
		Orders: s.snapshot.Orders,
		Pagination: api.Pagination{
			Page:  1,
			Pages: 1,
			Total: len(s.snapshot.Orders),
		},
	}, nil
}

func (s *snapshotSource) ListCategories(ctx context.Context) ([]api.Category, error) {
	return nil, ErrNotCached
}

func (s *snapshotSource) ListVendors(ctx context.Context) ([]api.Vendor, error) {
	return nil, ErrNotCached
}

func (s *snapshotSource) ListPurchaseOrders(ctx context.Context) ([]api.PurchaseOrder, error) {
	return nil, ErrNotCached
}

func (s *snapshotSource) ListUsers(ctx context.Context) ([]api.User, error) {
	return nil, ErrNotCached
}

func (s *snapshotSource) SystemStats(ctx context.Context) (*api.SystemStats, error) {
	if s.snapshot.Stats == nil {
		return nil, ErrNotCached
	}
	return s.snapshot.Stats, nil
}

func (s *snapshotSource) LowStock(ctx context.Context) ([]api.InventoryItem, error) {
	return s.snapshot.LowStock, nil
}

func (s *snapshotSource) InventoryValue(ctx context.Context) (*api.InventoryValue, error) {
	if s.snapshot.InventoryValue == nil {
		return nil, ErrNotCached
	}
	return s.snapshot.InventoryValue, nil
}
