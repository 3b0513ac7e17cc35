// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package navigation

import (
	"slices"
	"testing"

	"github.com/stockroomhq/stockroom/lib/session"
)

func TestEveryPageMapped(t *testing.T) {
	for _, page := range Pages() {
		if !Known(page) {
			t.Errorf("page %q missing from the capability table", page)
		}
	}
	if len(capabilities) != len(pageOrder) {
		t.Errorf("capability table has %d entries, declaration order has %d",
			len(capabilities), len(pageOrder))
	}
}

func TestVisible(t *testing.T) {
	tests := []struct {
		role session.Role
		want []Page
	}{
		{session.RoleAdmin, []Page{
			PageDashboard, PageInventory, PageProducts, PageOrders,
			PageCategories, PageVendors, PagePurchaseOrders,
			PageReports, PageAdmin, PageSettings,
		}},
		{session.RoleStaff, []Page{
			PageDashboard, PageInventory, PageProducts, PageOrders,
			PageCategories, PageVendors, PagePurchaseOrders,
			PageSettings,
		}},
		{session.RoleUser, []Page{
			PageDashboard, PageOrders, PageReports, PageSettings,
		}},
	}
	for _, test := range tests {
		t.Run(string(test.role), func(t *testing.T) {
			got := Visible(test.role)
			if !slices.Equal(got, test.want) {
				t.Errorf("Visible(%s) = %v, want %v", test.role, got, test.want)
			}
		})
	}
}

func TestUnmappedPageDenied(t *testing.T) {
	const page = Page("reorder")
	if Known(page) {
		t.Fatalf("%q unexpectedly in the capability table", page)
	}
	for _, role := range []session.Role{session.RoleAdmin, session.RoleStaff, session.RoleUser} {
		if Allowed(role, page) {
			t.Errorf("unmapped page allowed for role %s", role)
		}
	}
	if got := Guard(session.StateAuthenticated, session.RoleAdmin, page); got != RedirectDashboard {
		t.Errorf("Guard(unmapped) = %v, want redirect-dashboard", got)
	}
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name  string
		state session.State
		role  session.Role
		page  Page
		want  Decision
	}{
		{"authenticated admin on admin page", session.StateAuthenticated, session.RoleAdmin, PageAdmin, Allow},
		{"authenticated user on admin page", session.StateAuthenticated, session.RoleUser, PageAdmin, RedirectDashboard},
		{"authenticated staff on reports", session.StateAuthenticated, session.RoleStaff, PageReports, RedirectDashboard},
		{"unauthenticated on dashboard", session.StateUnauthenticated, "", PageDashboard, RedirectLogin},
		// Login redirect wins even when the role check would also fail.
		{"unauthenticated on admin page", session.StateUnauthenticated, session.RoleUser, PageAdmin, RedirectLogin},
		{"booting treated as unauthenticated", session.StateBooting, session.RoleAdmin, PageDashboard, RedirectLogin},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Guard(test.state, test.role, test.page); got != test.want {
				t.Errorf("Guard = %v, want %v", got, test.want)
			}
		})
	}
}
