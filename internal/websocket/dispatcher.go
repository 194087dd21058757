// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package websocket

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dayflow/internal/logging"
	"github.com/tomtom215/dayflow/internal/metrics"
)

// Envelope is the frame pushed to clients for every update.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp string      `json:"timestamp"`
}

// Dispatcher pushes updates to every live connection of a user.
type Dispatcher struct {
	registry *Registry
	now      func() time.Time
}

// NewDispatcher creates a dispatcher over registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry, now: time.Now}
}

// PushUpdate sends {type, payload, timestamp} to all of the user's
// connections in parallel. Connections that fail are pruned and closed.
//
// It returns true when at least one connection received the frame and false
// when the user has no connections or every send failed. ctx only carries
// logging fields; each send is bounded by the connection's write deadline,
// so a canceled ctx does not stop delivery.
func (d *Dispatcher) PushUpdate(ctx context.Context, userID int64, updateType string, payload interface{}) bool {
	conns := d.registry.Snapshot(userID)
	if len(conns) == 0 {
		metrics.PushAttempts.WithLabelValues(updateType, "no_connection").Inc()
		logging.Ctx(ctx).Debug().
			Int64("user_id", userID).
			Str("update_type", updateType).
			Msg("no active websocket connection for user")
		return false
	}
	data, err := json.Marshal(Envelope{
		Type:      updateType,
		Payload:   payload,
		Timestamp: d.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		metrics.PushAttempts.WithLabelValues(updateType, "failed").Inc()
		logging.Ctx(ctx).Error().Err(err).Str("update_type", updateType).Msg("failed to encode push envelope")
		return false
	}

	var delivered atomic.Int32
	var wg sync.WaitGroup
	for _, c := range conns {
		wg.Add(1)
		go func(c *Conn) {
			defer wg.Done()
			if err := c.WriteMessage(data); err != nil {
				metrics.PushSendFailures.Inc()
				logging.Ctx(ctx).Warn().
					Err(err).
					Int64("user_id", userID).
					Uint64("conn_id", c.ID()).
					Msg("push to websocket failed, dropping connection")
				d.registry.Remove(c)
				_ = c.Close()
				return
			}
			delivered.Add(1)
		}(c)
	}
	wg.Wait()

	ok := delivered.Load() > 0
	result := "delivered"
	if !ok {
		result = "failed"
	}
	metrics.PushAttempts.WithLabelValues(updateType, result).Inc()
	logging.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Str("update_type", updateType).
		Int("connections", len(conns)).
		Int32("delivered", delivered.Load()).
		Msg("push update sent")
	return ok
}

// ConnectionCount returns the user's live connection count.
func (d *Dispatcher) ConnectionCount(userID int64) int {
	return d.registry.Count(userID)
}

// TotalConnections returns the live connection count across users.
func (d *Dispatcher) TotalConnections() int {
	return d.registry.Total()
}
