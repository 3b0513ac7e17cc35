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

// NewUser is the admin user-creation request. Password is sent only
// here; it never appears in any response type.
type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// SystemSettings is the admin configuration surface. Shape matches the
// original dashboard's settings form; partial backends may not
// implement the endpoint at all (callers degrade to local storage on
// IsNotImplemented).
type SystemSettings struct {
	LowStockThreshold  int    `json:"low_stock_threshold"`
	AutoReorder        bool   `json:"auto_reorder"`
	EmailNotifications bool   `json:"email_notifications"`
	BackupFrequency    string `json:"backup_frequency"`
	ItemsPerPage       int    `json:"items_per_page"`
}

// BackupResult acknowledges a server-side backup request.
type BackupResult struct {
	Message   string `json:"message"`
	Path      string `json:"path,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ListUsers fetches all user accounts. Admin only; other roles get a
// 403 validation error.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	var envelope struct {
		Users []User `json:"users"`
	}
	if err := s.get(ctx, "/admin/users", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Users, nil
}

// CreateUser creates a user account.
func (s *Session) CreateUser(ctx context.Context, user NewUser) (*User, error) {
	var created User
	if err := s.send(ctx, http.MethodPost, "/admin/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser updates a user account. An empty Password leaves the
// stored password unchanged.
func (s *Session) UpdateUser(ctx context.Context, id int, user NewUser) (*User, error) {
	var updated User
	if err := s.send(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d", id), user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser removes a user account.
func (s *Session) DeleteUser(ctx context.Context, id int) error {
	return s.send(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil)
}

// SystemStats fetches the admin system overview.
func (s *Session) SystemStats(ctx context.Context) (*SystemStats, error) {
	var stats SystemStats
	if err := s.get(ctx, "/admin/system-stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// UpdateSystemSettings pushes admin settings to the server. The write
// shares the system-stats path. Returns IsNotImplemented on backends
// without the settings endpoint.
func (s *Session) UpdateSystemSettings(ctx context.Context, settings SystemSettings) error {
	return s.send(ctx, http.MethodPut, "/admin/system-stats", settings, nil)
}

// AuditLogOptions narrows an audit log listing.
type AuditLogOptions struct {
	Page    int
	PerPage int
}

func (o AuditLogOptions) query() url.Values {
	query := url.Values{}
	if o.Page > 0 {
		query.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(o.PerPage))
	}
	return query
}

// AuditLogPage is one page of the server's action trail, newest first.
type AuditLogPage struct {
	Logs       []AuditLog `json:"logs"`
	Pagination Pagination `json:"pagination"`
}

// AuditLogs fetches a page of audit log entries.
func (s *Session) AuditLogs(ctx context.Context, options AuditLogOptions) (*AuditLogPage, error) {
	var page AuditLogPage
	if err := s.get(ctx, "/admin/audit-logs", options.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Backup asks the server to snapshot its database. Returns
// IsNotImplemented on backends without the backup endpoint.
func (s *Session) Backup(ctx context.Context) (*BackupResult, error) {
	var result BackupResult
	if err := s.send(ctx, http.MethodPost, "/admin/backup", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
