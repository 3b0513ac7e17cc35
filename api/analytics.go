// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "context"

// LowStock fetches the items at or below their minimum stock level.
func (s *Session) LowStock(ctx context.Context) ([]InventoryItem, error) {
	var envelope struct {
		Items []InventoryItem `json:"low_stock_items"`
	}
	if err := s.get(ctx, "/analytics/low-stock", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// InventoryValue fetches the total stock valuation and its per-category
// breakdown.
func (s *Session) InventoryValue(ctx context.Context) (*InventoryValue, error) {
	var value InventoryValue
	if err := s.get(ctx, "/analytics/inventory-value", nil, &value); err != nil {
		return nil, err
	}
	return &value, nil
}
