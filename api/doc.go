// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the single point of contact with a remote stockroom
// inventory service. A Client holds the server URL and HTTP transport;
// a Session layers a bearer token on top and exposes one method per
// resource operation (inventory, categories, orders, vendors, purchase
// orders, admin).
//
// Error handling follows a fixed taxonomy. Server-reported failures
// surface as *Error carrying the HTTP status and the response body's
// "error" field. A 401 additionally fires the Session's auth-failure
// handler exactly once — the session layer subscribes to this to force
// a logout, so no caller can keep operating on a dead token. Network
// and decoding failures surface as ordinary wrapped errors; IsTransport
// distinguishes them. Nothing in this package retries.
package api
