// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// basePath is prefixed to every endpoint path. The server mounts its
// whole surface under /api.
const basePath = "/api"

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// ServerURL is the base URL of the stockroom service
	// (e.g., "http://localhost:5001"). The "/api" prefix is added by
	// the client; do not include it.
	ServerURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client is an unauthenticated stockroom client. It holds the server
// URL and HTTP transport, shared across Sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new unauthenticated stockroom client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.ServerURL == "" {
		return nil, fmt.Errorf("api: ServerURL is required")
	}

	// Validate the URL structure. We store the string form (with
	// trailing slash stripped) and build request URLs by direct
	// concatenation — endpoint paths are fixed strings with numeric
	// IDs, so there is nothing to percent-encode.
	if _, err := url.Parse(config.ServerURL); err != nil {
		return nil, fmt.Errorf("api: invalid ServerURL %q: %w", config.ServerURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.ServerURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// ServerURL returns the configured base URL with the trailing slash
// stripped.
func (c *Client) ServerURL() string {
	return c.baseURL
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's connection pool. Call this after a network disruption to
// force subsequent requests to establish fresh TCP connections instead
// of reusing a poisoned pooled connection.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Health probes the unauthenticated health endpoint. Useful for
// checking that the server is reachable before attempting a login.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/health", "", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: health check failed: %w", err)
	}

	var status HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("api: failed to parse health response: %w", err)
	}
	return &status, nil
}

// Login authenticates with username and password. On success the
// returned LoginResult carries the bearer token and the profile the
// server embedded in the login response — callers need no follow-up
// request to learn the user's role. A 401 surfaces as *Error; use
// IsAuth to distinguish bad credentials from transport failures.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" {
		return nil, fmt.Errorf("api: username is required for login")
	}

	request := loginRequest{Username: username, Password: password}
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/login", "", nil, request)
	if err != nil {
		return nil, fmt.Errorf("api: login failed: %w", err)
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("api: failed to parse login response: %w", err)
	}
	if result.Token == "" {
		return nil, fmt.Errorf("api: login response missing access_token")
	}

	c.logger.Info("logged in to stockroom server",
		"username", result.User.Username,
		"role", result.User.Role,
	)

	return &result, nil
}

// SessionFromToken creates a Session from an existing bearer token.
// This does NOT validate the token — the first API call will fail if
// it is invalid. Callers that need validation up front should follow
// with CurrentUser.
func (c *Client) SessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// doRequest performs an HTTP request against the server's /api surface
// and returns the response body. On 2xx, returns the body. On non-2xx,
// returns a *Error. token may be empty for unauthenticated endpoints.
// query may be nil for endpoints without query parameters.
func (c *Client) doRequest(ctx context.Context, method, path, token string, query url.Values, requestBody any) ([]byte, error) {
	requestURL := c.baseURL + basePath + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	// All server error responses use the same JSON shape: an object
	// with an "error" string. Partial backends return bare 404 pages
	// for unimplemented endpoints, so a non-JSON body falls back to
	// the HTTP status text rather than failing the error path itself.
	var serverErr Error
	if jsonErr := json.Unmarshal(responseBody, &serverErr); jsonErr != nil || serverErr.Message == "" {
		serverErr.Message = http.StatusText(response.StatusCode)
	}
	serverErr.StatusCode = response.StatusCode

	return responseBody, &serverErr
}
