// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package services

import (
	"context"

	gorillaws "github.com/gorilla/websocket"

	"github.com/tomtom215/dayflow/internal/logging"
)

// ShutdownReason is sent with the 1001 close frame.
const ShutdownReason = "Server shutting down"

// ConnectionCloser matches websocket.Registry.CloseAll.
type ConnectionCloser interface {
	CloseAll(code int, reason string) int
}

// ConnectionDrainService closes every registered WebSocket with 1001 Going
// Away when the tree stops. http.Server.Shutdown does not touch hijacked
// connections, so without it sessions would linger until their pong deadline.
type ConnectionDrainService struct {
	closer ConnectionCloser
	name   string
}

// NewConnectionDrainService creates the drain service.
func NewConnectionDrainService(closer ConnectionCloser) *ConnectionDrainService {
	return &ConnectionDrainService{closer: closer, name: "connection-drain"}
}

// Serve implements suture.Service.
func (d *ConnectionDrainService) Serve(ctx context.Context) error {
	<-ctx.Done()
	closed := d.closer.CloseAll(gorillaws.CloseGoingAway, ShutdownReason)
	logging.Info().Int("connections", closed).Msg("closed websocket connections for shutdown")
	return ctx.Err()
}

// String implements fmt.Stringer for suture's logs.
func (d *ConnectionDrainService) String() string {
	return d.name
}
