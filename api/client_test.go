// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient(t *testing.T) {
	t.Run("valid URL", func(t *testing.T) {
		client, err := NewClient(ClientConfig{ServerURL: "http://localhost:5001"})
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		if client == nil {
			t.Fatal("NewClient returned nil")
		}
	})

	t.Run("trailing slash stripped", func(t *testing.T) {
		client, err := NewClient(ClientConfig{ServerURL: "http://localhost:5001/"})
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		if got := client.ServerURL(); got != "http://localhost:5001" {
			t.Errorf("ServerURL = %q, want trailing slash stripped", got)
		}
	})

	t.Run("empty URL", func(t *testing.T) {
		_, err := NewClient(ClientConfig{})
		if err == nil {
			t.Fatal("expected error for empty URL")
		}
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewClient(ClientConfig{ServerURL: "://invalid"})
		if err == nil {
			t.Fatal("expected error for invalid URL")
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path != "/api/auth/login" {
				t.Errorf("unexpected path: %s", request.URL.Path)
				writer.WriteHeader(http.StatusNotFound)
				return
			}
			if request.Method != http.MethodPost {
				t.Errorf("unexpected method: %s", request.Method)
			}
			if got := request.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type = %q", got)
			}
			if got := request.Header.Get("Authorization"); got != "" {
				t.Errorf("login must not carry a bearer token, got %q", got)
			}

			var body map[string]string
			if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode request body: %v", err)
			}
			if body["username"] != "admin" || body["password"] != "admin123" {
				t.Errorf("unexpected credentials: %v", body)
			}

			writer.Header().Set("Content-Type", "application/json")
			json.NewEncoder(writer).Encode(map[string]any{
				"access_token": "abc",
				"user": map[string]any{
					"id":       1,
					"username": "admin",
					"email":    "admin@example.com",
					"role":     "admin",
				},
			})
		}))
		defer server.Close()

		client, err := NewClient(ClientConfig{ServerURL: server.URL})
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}

		result, err := client.Login(context.Background(), "admin", "admin123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if result.Token != "abc" {
			t.Errorf("Token = %q, want abc", result.Token)
		}
		if result.User.Role != "admin" {
			t.Errorf("Role = %q, want admin", result.User.Role)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"error": "Invalid credentials"})
		}))
		defer server.Close()

		client, err := NewClient(ClientConfig{ServerURL: server.URL})
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}

		_, err = client.Login(context.Background(), "admin", "wrong")
		if !IsAuth(err) {
			t.Fatalf("expected auth error, got %v", err)
		}
	})

	t.Run("empty username", func(t *testing.T) {
		client, err := NewClient(ClientConfig{ServerURL: "http://localhost:5001"})
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		if _, err := client.Login(context.Background(), "", "pw"); err == nil {
			t.Fatal("expected error for empty username")
		}
	})
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name             string
		status           int
		body             string
		wantMessage      string
		isAuth           bool
		isValidation     bool
		isNotImplemented bool
	}{
		{
			name:        "validation error with body",
			status:      http.StatusBadRequest,
			body:        `{"error": "name is required"}`,
			wantMessage:  "name is required",
			isValidation: true,
		},
		{
			name:        "forbidden",
			status:      http.StatusForbidden,
			body:        `{"error": "Admin access required"}`,
			wantMessage:  "Admin access required",
			isValidation: true,
		},
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			body:        `{"error": "token expired"}`,
			wantMessage: "token expired",
			isAuth: true,
		},
		{
			name:        "not implemented endpoint",
			status:      http.StatusNotFound,
			body:        `<html>404 page</html>`,
			wantMessage:      "Not Found",
			isNotImplemented: true,
		},
		{
			name:        "error body without error field",
			status:      http.StatusInternalServerError,
			body:        `{"detail": "boom"}`,
			wantMessage: "Internal Server Error",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(test.status)
				writer.Write([]byte(test.body))
			}))
			defer server.Close()

			client, err := NewClient(ClientConfig{ServerURL: server.URL})
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}

			session := client.SessionFromToken("tok")
			_, err = session.ListCategories(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}

			var serverErr *Error
			if !errors.As(err, &serverErr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if serverErr.StatusCode != test.status {
				t.Errorf("StatusCode = %d, want %d", serverErr.StatusCode, test.status)
			}
			if serverErr.Message != test.wantMessage {
				t.Errorf("Message = %q, want %q", serverErr.Message, test.wantMessage)
			}
			if got := IsAuth(err); got != test.isAuth {
				t.Errorf("IsAuth = %v, want %v", got, test.isAuth)
			}
			if got := IsValidation(err); got != test.isValidation {
				t.Errorf("IsValidation = %v, want %v", got, test.isValidation)
			}
			if got := IsNotImplemented(err); got != test.isNotImplemented {
				t.Errorf("IsNotImplemented = %v, want %v", got, test.isNotImplemented)
			}
			if IsTransport(err) {
				t.Error("server error misclassified as transport failure")
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	serverURL := server.URL
	server.Close() // connection refused from here on

	client, err := NewClient(ClientConfig{ServerURL: serverURL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	session := client.SessionFromToken("tok")
	_, err = session.ListVendors(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsTransport(err) {
		t.Errorf("expected transport classification, got %v", err)
	}
	if IsAuth(err) || IsValidation(err) || IsNotImplemented(err) {
		t.Error("transport failure misclassified as server error")
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/health" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		json.NewEncoder(writer).Encode(HealthStatus{Status: "healthy", Database: "connected"})
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{ServerURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", status.Status)
	}
}

