// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the dashboard TUI. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
//
// The fields cover the universal chrome (text, selection, borders)
// plus the semantic categories that recur across pages: stock status
// on inventory rows, fulfillment status on orders and purchase
// orders.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Stock status colors.
	StockOK       lipgloss.Color
	StockLow      lipgloss.Color
	StockOut      lipgloss.Color
	StockInactive lipgloss.Color

	// Order and purchase-order lifecycle colors.
	StatusPending  lipgloss.Color
	StatusActive   lipgloss.Color
	StatusDone     lipgloss.Color
	StatusCanceled lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	SidebarActive    lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color

	// Filter match highlighting.
	MatchBackground lipgloss.Color
}

// StockStatusColor returns the color for an inventory status string
// as the server renders it ("In Stock", "Low Stock", "Out of Stock",
// "Inactive"). Unknown values get FaintText.
func (theme Theme) StockStatusColor(status string) lipgloss.Color {
	switch status {
	case "In Stock":
		return theme.StockOK
	case "Low Stock":
		return theme.StockLow
	case "Out of Stock":
		return theme.StockOut
	case "Inactive":
		return theme.StockInactive
	default:
		return theme.FaintText
	}
}

// OrderStatusColor returns the color for an order or purchase-order
// status. The two lifecycles share vocabulary: early states render as
// pending, terminal success states as done, cancellations in the
// cancel color, and everything in between as active.
func (theme Theme) OrderStatusColor(status string) lipgloss.Color {
	switch status {
	case "pending", "draft":
		return theme.StatusPending
	case "delivered", "received", "completed":
		return theme.StatusDone
	case "canceled", "cancelled":
		return theme.StatusCanceled
	default:
		return theme.StatusActive
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StockOK:       lipgloss.Color("114"), // green
	StockLow:      lipgloss.Color("220"), // amber
	StockOut:      lipgloss.Color("196"), // red
	StockInactive: lipgloss.Color("240"), // dim gray

	StatusPending:  lipgloss.Color("220"), // amber
	StatusActive:   lipgloss.Color("75"),  // blue
	StatusDone:     lipgloss.Color("114"), // green
	StatusCanceled: lipgloss.Color("245"), // gray

	HeaderForeground: lipgloss.Color("255"),
	SidebarActive:    lipgloss.Color("75"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	ErrorText:        lipgloss.Color("196"),

	MatchBackground: lipgloss.Color("58"), // dark amber tint
}

// LightTheme is an alternate palette for light-background terminals,
// selected via the "theme: light" config key.
var LightTheme = Theme{
	NormalText: lipgloss.Color("235"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("253"),
	SelectedForeground: lipgloss.Color("232"),

	StockOK:       lipgloss.Color("28"),
	StockLow:      lipgloss.Color("130"),
	StockOut:      lipgloss.Color("124"),
	StockInactive: lipgloss.Color("247"),

	StatusPending:  lipgloss.Color("130"),
	StatusActive:   lipgloss.Color("26"),
	StatusDone:     lipgloss.Color("28"),
	StatusCanceled: lipgloss.Color("243"),

	HeaderForeground: lipgloss.Color("232"),
	SidebarActive:    lipgloss.Color("26"),
	BorderColor:      lipgloss.Color("250"),
	HelpText:         lipgloss.Color("245"),
	ErrorText:        lipgloss.Color("124"),

	MatchBackground: lipgloss.Color("222"),
}

// ThemeByName maps the config file's theme key to a palette. Unknown
// names fall back to the dark default.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme
	}
	return DefaultTheme
}
