// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package websocket delivers real-time updates to authenticated users.

Key Components:

  - Registry: user id to live connections, guarded by one RWMutex
  - Gateway/Session: per-connection handshake and read loop
  - Dispatcher: pushes an update to every connection of one user
  - Conn: a connection with a serialised writer and idempotent close

Session lifecycle:

	connecting -> awaiting_auth -> authenticated -> closed

The first frame from the client must be

	{"type": "auth", "token": "<jwt>"}

and must arrive within realtime.auth_timeout. On failure the server sends
{"type": "error", "message": "..."} and closes with 1008 (policy violation).
On success the connection is registered and the server replies

	{"type": "auth_success", "user_id": 42}

After that, client messages are read and dropped (subject to a rate limit);
the server pings every realtime.pong_wait * 0.9 and the connection is
unregistered as soon as the read loop ends.

Push frames:

	{"type": "leave_approved", "payload": {...}, "timestamp": "2025-01-10T09:30:00.123456Z"}

A send that fails or exceeds realtime.write_wait prunes that connection and
does not affect the others.

Usage:

	registry := websocket.NewRegistry()
	gateway := websocket.NewGateway(registry, jwtManager, cfg.Realtime)
	dispatcher := websocket.NewDispatcher(registry)

	// in the HTTP handler, after upgrading
	gateway.Serve(r.Context(), conn)

	// from an event handler
	delivered := dispatcher.PushUpdate(ctx, userID, "leave_approved", payload)
*/
package websocket
