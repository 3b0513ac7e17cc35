// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCurrentUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/auth/me" {
			t.Errorf("unexpected path: %s", request.URL.Path)
			writer.WriteHeader(http.StatusNotFound)
			return
		}
		if got := request.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(writer).Encode(map[string]any{
			"user": map[string]any{
				"id":        7,
				"username":  "casey",
				"email":     "casey@example.com",
				"role":      "staff",
				"is_active": true,
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{ServerURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	user, err := client.SessionFromToken("tok-123").CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.Username != "casey" || user.Role != "staff" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestAuthFailureHandler(t *testing.T) {
	t.Run("fired on 401", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"error": "Token has expired"})
		}))
		defer server.Close()

		client, err := NewClient(ClientConfig{ServerURL: server.URL})
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}

		session := client.SessionFromToken("stale")
		fired := 0
		session.OnAuthFailure(func() { fired++ })

		_, err = session.ListCategories(context.Background())
		if !IsAuth(err) {
			t.Fatalf("expected auth error, got %v", err)
		}
		if fired != 1 {
			t.Errorf("handler fired %d times, want 1", fired)
		}
	})

	t.Run("fired at most once per session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"error": "Token has expired"})
		}))
		defer server.Close()

		client, err := NewClient(ClientConfig{ServerURL: server.URL})
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}

		session := client.SessionFromToken("stale")
		var fired atomic.Int32
		session.OnAuthFailure(func() { fired.Add(1) })

		// Simulate several pages with in-flight requests all hitting
		// the same dead token.
		var group sync.WaitGroup
		for range 5 {
			group.Add(1)
			go func() {
				defer group.Done()
				session.ListVendors(context.Background())
			}()
		}
		group.Wait()

		if got := fired.Load(); got != 1 {
			t.Errorf("handler fired %d times, want exactly 1", got)
		}
	})

	t.Run("not fired on other errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(writer).Encode(map[string]string{"error": "bad input"})
		}))
		defer server.Close()

		client, err := NewClient(ClientConfig{ServerURL: server.URL})
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}

		session := client.SessionFromToken("tok")
		fired := 0
		session.OnAuthFailure(func() { fired++ })

		session.ListCategories(context.Background())
		if fired != 0 {
			t.Errorf("handler fired on a non-401 error")
		}
	})
}
