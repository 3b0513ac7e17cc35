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

// ListOrdersOptions narrows an order listing.
type ListOrdersOptions struct {
	Page    int
	PerPage int
	Status  string
}

func (o ListOrdersOptions) query() url.Values {
	query := url.Values{}
	if o.Page > 0 {
		query.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Status != "" {
		query.Set("status", o.Status)
	}
	return query
}

// OrderPage is one page of an order listing, newest first.
type OrderPage struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// ListOrders fetches a page of customer orders.
func (s *Session) ListOrders(ctx context.Context, options ListOrdersOptions) (*OrderPage, error) {
	var page OrderPage
	if err := s.get(ctx, "/orders", options.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateOrder places a customer order. The server validates stock
// levels per line and decrements inventory on success.
func (s *Session) CreateOrder(ctx context.Context, order Order) (*Order, error) {
	// Single-object responses arrive enveloped: {"order": {...}}.
	var envelope struct {
		Order Order `json:"order"`
	}
	if err := s.send(ctx, http.MethodPost, "/orders", order, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Order, nil
}

// UpdateOrder updates an order's status and customer fields. Line
// items are immutable after creation.
func (s *Session) UpdateOrder(ctx context.Context, id int, order Order) (*Order, error) {
	var envelope struct {
		Order Order `json:"order"`
	}
	if err := s.send(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), order, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Order, nil
}
