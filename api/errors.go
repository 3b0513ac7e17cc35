// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a structured error response from the stockroom
// server. Callers can use errors.As to extract the structured
// information:
//
//	var serverErr *api.Error
//	if errors.As(err, &serverErr) {
//	    if serverErr.StatusCode == http.StatusNotFound { ... }
//	}
//
// Most callers only need the coarse classification helpers (IsAuth,
// IsValidation, IsNotImplemented, IsTransport).
type Error struct {
	// Message is the human-readable description from the response
	// body's "error" field, or the HTTP status text when the body
	// carried no such field.
	Message string `json:"error"`
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("stockroom: %d: %s", e.StatusCode, e.Message)
}

// IsAuth reports whether err is a 401 from the server: the token is
// invalid or the credentials were rejected. The transport layer has
// already fired the session's auth-failure handler by the time a
// caller sees this.
func IsAuth(err error) bool {
	var serverErr *Error
	return errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusUnauthorized
}

// IsValidation reports whether err is a client-side input failure the
// user must correct (4xx other than 401 and 404). The Message field
// carries the server's verbatim explanation.
func IsValidation(err error) bool {
	var serverErr *Error
	if !errors.As(err, &serverErr) {
		return false
	}
	switch serverErr.StatusCode {
	case http.StatusUnauthorized, http.StatusNotFound:
		return false
	}
	return serverErr.StatusCode >= 400 && serverErr.StatusCode < 500
}

// IsNotImplemented reports whether err is a 404. Partially-implemented
// backends answer 404 for optional endpoints (backup, settings);
// callers degrade to local fallback behavior instead of failing hard.
func IsNotImplemented(err error) bool {
	var serverErr *Error
	return errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusNotFound
}

// IsTransport reports whether err is a network or decoding failure —
// the request never produced a structured server response. These are
// surfaced as generic failures with a manual retry affordance; the
// client never retries on its own.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var serverErr *Error
	return !errors.As(err, &serverErr)
}
