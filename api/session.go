// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// AuthFailureFunc is invoked when an authenticated request is rejected
// with a 401. It fires at most once per Session — the token is dead
// regardless of which caller tripped over it first, and subsequent
// in-flight requests failing the same way must not re-trigger logout
// handling.
type AuthFailureFunc func()

// Session is an authenticated view over a Client. It holds the bearer
// token and attaches it to every request. Sessions are safe for
// concurrent use.
type Session struct {
	client *Client
	token  string

	failureMu     sync.Mutex
	failureFired  bool
	onAuthFailure AuthFailureFunc
}

// OnAuthFailure installs the handler fired on the first 401 this
// session observes. The session layer uses this to force a logout:
// clearing the persisted token and resetting the in-memory state. The
// coupling between transport and session lifecycle is deliberate and
// lives here, in one documented place.
func (s *Session) OnAuthFailure(handler AuthFailureFunc) {
	s.failureMu.Lock()
	defer s.failureMu.Unlock()
	s.onAuthFailure = handler
}

// CurrentUser fetches the authenticated user's profile. Success
// doubles as token verification — the server has no dedicated
// lightweight verify endpoint, so a boot-time check costs one profile
// fetch.
func (s *Session) CurrentUser(ctx context.Context) (*User, error) {
	var envelope struct {
		User User `json:"user"`
	}
	if err := s.get(ctx, "/auth/me", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// do performs an authenticated request, firing the auth-failure
// handler on the first 401.
func (s *Session) do(ctx context.Context, method, path string, query url.Values, requestBody any) ([]byte, error) {
	body, err := s.client.doRequest(ctx, method, path, s.token, query, requestBody)
	if err != nil && IsAuth(err) {
		s.fireAuthFailure()
	}
	return body, err
}

func (s *Session) fireAuthFailure() {
	s.failureMu.Lock()
	handler := s.onAuthFailure
	fired := s.failureFired
	s.failureFired = true
	s.failureMu.Unlock()

	if handler != nil && !fired {
		handler()
	}
}

// get performs an authenticated GET and unmarshals the response into
// result.
func (s *Session) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := s.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("api: failed to parse %s response: %w", path, err)
	}
	return nil
}

// send performs an authenticated mutating request. result may be nil
// when the caller has no use for the response body.
func (s *Session) send(ctx context.Context, method, path string, requestBody, result any) error {
	body, err := s.do(ctx, method, path, nil, requestBody)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("api: failed to parse %s response: %w", path, err)
	}
	return nil
}
