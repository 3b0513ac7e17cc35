// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package navigation defines the pages of the stockroom client and the
// role capability table that gates access to them. Both the dashboard
// sidebar and the CLI consult the same table, so a page hidden from a
// role in one surface is hidden in all of them.
//
// The table is deny-by-default: a page absent from it is not navigable
// by anyone. Guard decisions never surface as errors — an unauthorized
// jump lands on the dashboard, an unauthenticated one on the login
// screen.
package navigation

import (
	"github.com/stockroomhq/stockroom/lib/session"
)

// Page identifies a navigable screen of the client.
type Page string

const (
	PageDashboard      Page = "dashboard"
	PageInventory      Page = "inventory"
	PageProducts       Page = "products"
	PageOrders         Page = "orders"
	PageCategories     Page = "categories"
	PageVendors        Page = "vendors"
	PagePurchaseOrders Page = "purchase-orders"
	PageReports        Page = "reports"
	PageAdmin          Page = "admin"
	PageSettings       Page = "settings"
)

// pageOrder fixes the presentation order of the sidebar and of
// Visible. Declaration order here is the one source of truth.
var pageOrder = []Page{
	PageDashboard,
	PageInventory,
	PageProducts,
	PageOrders,
	PageCategories,
	PageVendors,
	PagePurchaseOrders,
	PageReports,
	PageAdmin,
	PageSettings,
}

// capabilities maps each page to the roles allowed to open it.
var capabilities = map[Page][]session.Role{
	PageDashboard:      {session.RoleAdmin, session.RoleStaff, session.RoleUser},
	PageInventory:      {session.RoleAdmin, session.RoleStaff},
	PageProducts:       {session.RoleAdmin, session.RoleStaff},
	PageOrders:         {session.RoleAdmin, session.RoleStaff, session.RoleUser},
	PageCategories:     {session.RoleAdmin, session.RoleStaff},
	PageVendors:        {session.RoleAdmin, session.RoleStaff},
	PagePurchaseOrders: {session.RoleAdmin, session.RoleStaff},
	PageReports:        {session.RoleAdmin, session.RoleUser},
	PageAdmin:          {session.RoleAdmin},
	PageSettings:       {session.RoleAdmin, session.RoleStaff, session.RoleUser},
}

// Pages returns every navigable page in declaration order.
func Pages() []Page {
	pages := make([]Page, len(pageOrder))
	copy(pages, pageOrder)
	return pages
}

// Known reports whether page appears in the capability table.
func Known(page Page) bool {
	_, ok := capabilities[page]
	return ok
}

// Allowed reports whether role may open page. Pages missing from the
// capability table are denied to every role.
func Allowed(role session.Role, page Page) bool {
	for _, allowed := range capabilities[page] {
		if role == allowed {
			return true
		}
	}
	return false
}

// Visible returns the pages role may open, in declaration order. This
// is what the dashboard sidebar renders.
func Visible(role session.Role) []Page {
	var pages []Page
	for _, page := range pageOrder {
		if Allowed(role, page) {
			pages = append(pages, page)
		}
	}
	return pages
}

// Decision is the outcome of a guard check.
type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// RedirectLogin sends the user to the login screen.
	RedirectLogin
	// RedirectDashboard sends the user to the dashboard.
	RedirectDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectDashboard:
		return "redirect-dashboard"
	default:
		return "unknown"
	}
}

// Guard decides whether the session identified by state and role may
// open page. The authentication check runs first: an unauthenticated
// session is redirected to login regardless of what the capability
// table says about the page. An authenticated session lacking the role
// is redirected to the dashboard.
func Guard(state session.State, role session.Role, page Page) Decision {
	if state != session.StateAuthenticated {
		return RedirectLogin
	}
	if !Allowed(role, page) {
		return RedirectDashboard
	}
	return Allow
}
