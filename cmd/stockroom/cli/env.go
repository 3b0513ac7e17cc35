// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/lib/config"
	"github.com/stockroomhq/stockroom/lib/tokenstore"
)

// DefaultRequestTimeout bounds API requests issued by one-shot CLI
// commands when the config does not set its own timeout.
const DefaultRequestTimeout = 10 * time.Second

// Env wires together the pieces every command needs: the loaded
// config, the token store, and a logger. Commands construct it once
// at the top of Run.
type Env struct {
	Config *config.Config
	Store  *tokenstore.Store
	Logger *slog.Logger
}

// NewEnv loads the client configuration and opens the token store at
// its default path.
func NewEnv() (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return &Env{
		Config: cfg,
		Store:  tokenstore.New(tokenstore.DefaultPath()),
		Logger: NewCommandLogger(),
	}, nil
}

// Client builds an API client. serverURL overrides the configured
// server when non-empty (the --server flag).
func (e *Env) Client(serverURL string) (*api.Client, error) {
	if serverURL == "" {
		serverURL = e.Config.ServerURL
	}
	return api.NewClient(api.ClientConfig{
		ServerURL: serverURL,
		Logger:    e.Logger,
	})
}

// RequireSession loads the stored credentials and returns an
// authenticated API session for the server they were issued against.
// Returns a clear error directing the user to "stockroom login" when
// no session exists.
//
// The session's auth-failure handler clears the stored token, so a
// 401 on any call leaves the next command starting from a clean
// logged-out state instead of retrying a dead token.
func (e *Env) RequireSession() (*api.Session, *tokenstore.Credentials, error) {
	credentials, err := e.Store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("reading session file %s: %w", e.Store.Path(), err)
	}
	if credentials == nil {
		return nil, nil, fmt.Errorf("no stockroom session found at %s — run \"stockroom login\" first", e.Store.Path())
	}

	client, err := api.NewClient(api.ClientConfig{
		ServerURL: credentials.ServerURL,
		Logger:    e.Logger,
	})
	if err != nil {
		return nil, nil, err
	}

	apiSession := client.SessionFromToken(credentials.Token)
	apiSession.OnAuthFailure(func() {
		e.Logger.Warn("session rejected by server, clearing stored token",
			"path", e.Store.Path())
		e.Store.Clear()
	})
	return apiSession, credentials, nil
}

// RequestContext returns a context bounded by the configured request
// timeout, falling back to DefaultRequestTimeout.
func (e *Env) RequestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), e.Config.Timeout(DefaultRequestTimeout))
}
