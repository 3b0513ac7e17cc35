// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
)

// ReceiveItem records received quantity for one purchase order line,
// keyed by the line's id.
type ReceiveItem struct {
	ID               int `json:"id"`
	ReceivedQuantity int `json:"received_quantity"`
}

// ReceiveRequest records a (possibly partial) delivery against a
// purchase order. The server increments inventory quantities for the
// received lines.
type ReceiveRequest struct {
	Items []ReceiveItem `json:"items"`
}

// ListPurchaseOrders fetches all purchase orders.
func (s *Session) ListPurchaseOrders(ctx context.Context) ([]PurchaseOrder, error) {
	var envelope struct {
		PurchaseOrders []PurchaseOrder `json:"purchase_orders"`
	}
	if err := s.get(ctx, "/purchase-orders", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.PurchaseOrders, nil
}

// GetPurchaseOrder fetches a single purchase order with its lines.
func (s *Session) GetPurchaseOrder(ctx context.Context, id int) (*PurchaseOrder, error) {
	var po PurchaseOrder
	if err := s.get(ctx, fmt.Sprintf("/purchase-orders/%d", id), nil, &po); err != nil {
		return nil, err
	}
	return &po, nil
}

// CreatePurchaseOrder creates a purchase order in draft status.
func (s *Session) CreatePurchaseOrder(ctx context.Context, po PurchaseOrder) (*PurchaseOrder, error) {
	var created PurchaseOrder
	if err := s.send(ctx, http.MethodPost, "/purchase-orders", po, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePurchaseOrder replaces a purchase order's editable fields.
// Only draft orders are editable server-side.
func (s *Session) UpdatePurchaseOrder(ctx context.Context, id int, po PurchaseOrder) (*PurchaseOrder, error) {
	var updated PurchaseOrder
	if err := s.send(ctx, http.MethodPut, fmt.Sprintf("/purchase-orders/%d", id), po, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdatePurchaseOrderStatus moves a purchase order through its
// lifecycle (draft, submitted, approved, received, canceled).
func (s *Session) UpdatePurchaseOrderStatus(ctx context.Context, id int, status string) (*PurchaseOrder, error) {
	request := struct {
		Status string `json:"status"`
	}{Status: status}

	var updated PurchaseOrder
	if err := s.send(ctx, http.MethodPatch, fmt.Sprintf("/purchase-orders/%d/status", id), request, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePurchaseOrder removes a purchase order.
func (s *Session) DeletePurchaseOrder(ctx context.Context, id int) error {
	return s.send(ctx, http.MethodDelete, fmt.Sprintf("/purchase-orders/%d", id), nil, nil)
}

// ReceivePurchaseOrder records a delivery against a purchase order.
func (s *Session) ReceivePurchaseOrder(ctx context.Context, id int, request ReceiveRequest) (*PurchaseOrder, error) {
	var updated PurchaseOrder
	if err := s.send(ctx, http.MethodPost, fmt.Sprintf("/purchase-orders/%d/receive", id), request, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
