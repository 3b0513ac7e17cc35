// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Inventory listing status filters understood by the server.
const (
	FilterLowStock   = "low_stock"
	FilterOutOfStock = "out_of_stock"
)

// ListInventoryOptions narrows an inventory listing. Zero values mean
// "no filter"; the server defaults to page 1 with 20 items per page.
type ListInventoryOptions struct {
	Page       int
	PerPage    int
	Search     string
	CategoryID int
	// Status is FilterLowStock, FilterOutOfStock, or empty.
	Status string
}

func (o ListInventoryOptions) query() url.Values {
	query := url.Values{}
	if o.Page > 0 {
		query.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Search != "" {
		query.Set("search", o.Search)
	}
	if o.CategoryID > 0 {
		query.Set("category_id", strconv.Itoa(o.CategoryID))
	}
	if o.Status != "" {
		query.Set("status", o.Status)
	}
	return query
}

// InventoryPage is one page of an inventory listing.
type InventoryPage struct {
	Items      []InventoryItem `json:"inventory"`
	Pagination Pagination      `json:"pagination"`
}

// ListInventory fetches a page of inventory items.
func (s *Session) ListInventory(ctx context.Context, options ListInventoryOptions) (*InventoryPage, error) {
	var page InventoryPage
	if err := s.get(ctx, "/inventory", options.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateInventoryItem creates a new inventory item and returns the
// stored record. Vendor links missing a vendor ID or unit price are
// dropped before submission — half-filled vendor rows from a form
// would otherwise fail server-side validation.
func (s *Session) CreateInventoryItem(ctx context.Context, item InventoryItem) (*InventoryItem, error) {
	item.Vendors = completeVendorLinks(item.Vendors)
	// Single-object responses arrive enveloped: {"inventory": {...}}.
	var envelope struct {
		Inventory InventoryItem `json:"inventory"`
	}
	if err := s.send(ctx, http.MethodPost, "/inventory", item, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Inventory, nil
}

// UpdateInventoryItem replaces an inventory item's fields. The same
// vendor-link pruning as CreateInventoryItem applies.
func (s *Session) UpdateInventoryItem(ctx context.Context, id int, item InventoryItem) (*InventoryItem, error) {
	item.Vendors = completeVendorLinks(item.Vendors)
	var envelope struct {
		Inventory InventoryItem `json:"inventory"`
	}
	if err := s.send(ctx, http.MethodPut, fmt.Sprintf("/inventory/%d", id), item, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Inventory, nil
}

// DeleteInventoryItem removes an inventory item.
func (s *Session) DeleteInventoryItem(ctx context.Context, id int) error {
	return s.send(ctx, http.MethodDelete, fmt.Sprintf("/inventory/%d", id), nil, nil)
}

// completeVendorLinks filters out links lacking a vendor ID or a unit
// price.
func completeVendorLinks(links []VendorLink) []VendorLink {
	if links == nil {
		return nil
	}
	complete := make([]VendorLink, 0, len(links))
	for _, link := range links {
		if link.VendorID > 0 && link.UnitPrice > 0 {
			complete = append(complete, link)
		}
	}
	return complete
}
