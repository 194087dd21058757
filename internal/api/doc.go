// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package api provides the HTTP surface of the notification service.

Routing uses go-chi/chi with go-chi/cors and go-chi/httprate. Every JSON
response uses the same envelope:

	{"success":true,"data":{...},"meta":{"request_id":"...","timestamp":"...","duration_ms":1}}
	{"success":false,"error":{"code":"NOT_FOUND","message":"..."},"meta":{...}}

# Endpoints

  - GET /api/v2/ws: WebSocket upgrade. The first frame must be
    {"type":"auth","token":"<jwt>"}; see package websocket.
  - GET /api/v2/notifications: the caller's fallback notifications, newest
    first, with page, page_size and unread_only query parameters.
  - PUT /api/v2/notifications/{id}/read: owner-only mark as read.
  - POST /api/v2/events: {"type":"leave_approved","payload":{...}} from the
    CRUD services. Requires a publisher role (Admin or Service by default)
    and answers 202 once the event is dispatched or queued.
  - GET /health/live, GET /health/ready, GET /metrics.

# Security

Bearer tokens are validated by auth.Middleware, then authz.Middleware checks
the caller's role against the Casbin policy for the route's object and
action. The WebSocket origin is checked against security.cors_origins before
upgrading.
*/
package api
