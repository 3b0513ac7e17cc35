// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListCategories fetches all categories. The server does not paginate
// this listing.
func (s *Session) ListCategories(ctx context.Context) ([]Category, error) {
	var envelope struct {
		Categories []Category `json:"categories"`
	}
	if err := s.get(ctx, "/categories", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Categories, nil
}

// CreateCategory creates a category. The server rejects duplicate
// names with a validation error.
func (s *Session) CreateCategory(ctx context.Context, category Category) (*Category, error) {
	// Single-object responses arrive enveloped: {"category": {...}}.
	var envelope struct {
		Category Category `json:"category"`
	}
	if err := s.send(ctx, http.MethodPost, "/categories", category, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Category, nil
}

// UpdateCategory replaces a category's name and description.
func (s *Session) UpdateCategory(ctx context.Context, id int, category Category) (*Category, error) {
	var envelope struct {
		Category Category `json:"category"`
	}
	if err := s.send(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), category, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Category, nil
}

// DeleteCategory removes a category. The server refuses to delete a
// category that still has inventory items.
func (s *Session) DeleteCategory(ctx context.Context, id int) error {
	return s.send(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
}
