// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListVendors fetches all vendors.
func (s *Session) ListVendors(ctx context.Context) ([]Vendor, error) {
	var envelope struct {
		Vendors []Vendor `json:"vendors"`
	}
	if err := s.get(ctx, "/vendors", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Vendors, nil
}

// GetVendor fetches a single vendor by ID.
func (s *Session) GetVendor(ctx context.Context, id int) (*Vendor, error) {
	var vendor Vendor
	if err := s.get(ctx, fmt.Sprintf("/vendors/%d", id), nil, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

// CreateVendor creates a vendor.
func (s *Session) CreateVendor(ctx context.Context, vendor Vendor) (*Vendor, error) {
	var created Vendor
	if err := s.send(ctx, http.MethodPost, "/vendors", vendor, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateVendor replaces a vendor's fields.
func (s *Session) UpdateVendor(ctx context.Context, id int, vendor Vendor) (*Vendor, error) {
	var updated Vendor
	if err := s.send(ctx, http.MethodPut, fmt.Sprintf("/vendors/%d", id), vendor, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteVendor removes a vendor.
func (s *Session) DeleteVendor(ctx context.Context, id int) error {
	return s.send(ctx, http.MethodDelete, fmt.Sprintf("/vendors/%d", id), nil, nil)
}
