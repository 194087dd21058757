// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package api

import (
	"context"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"github.com/tomtom215/dayflow/internal/config"
	"github.com/tomtom215/dayflow/internal/notifications"
	"github.com/tomtom215/dayflow/internal/relay"
)

// SessionServer runs one WebSocket session to completion.
// websocket.Gateway satisfies it.
type SessionServer interface {
	Serve(ctx context.Context, ws *gorillaws.Conn)
}

// ConnectionStats reports live connection counts.
// websocket.Dispatcher satisfies it.
type ConnectionStats interface {
	TotalConnections() int
}

// Dependencies are the collaborators the HTTP handlers need.
type Dependencies struct {
	Sessions    SessionServer
	Connections ConnectionStats
	Store       notifications.Store
	Events      relay.Sink
}

// Handler serves every HTTP endpoint.
type Handler struct {
	cfg         *config.Config
	sessions    SessionServer
	connections ConnectionStats
	store       notifications.Store
	events      relay.Sink
	upgrader    gorillaws.Upgrader
	startTime   time.Time
}

// NewHandler creates the HTTP handlers.
func NewHandler(cfg *config.Config, deps Dependencies) *Handler {
	h := &Handler{
		cfg:         cfg,
		sessions:    deps.Sessions,
		connections: deps.Connections,
		store:       deps.Store,
		events:      deps.Events,
		startTime:   time.Now(),
	}
	h.upgrader = h.newUpgrader()
	return h
}
