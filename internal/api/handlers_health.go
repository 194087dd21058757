// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package api

import (
	"context"
	"net/http"
	"time"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status         string  `json:"status"`
	StoreReachable *bool   `json:"store_reachable,omitempty"`
	Connections    int     `json:"connections"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:        "alive",
		Connections:   h.connectionCount(),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 only when the notification store answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	reachable := h.store != nil && h.store.Ping(ctx) == nil
	status := HealthStatus{
		Status:         "ready",
		StoreReachable: &reachable,
		Connections:    h.connectionCount(),
		UptimeSeconds:  time.Since(h.startTime).Seconds(),
	}

	rw := NewResponseWriter(w, r)
	if !reachable {
		status.Status = "not_ready"
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Notification store unreachable", status)
		return
	}
	rw.Success(status)
}

func (h *Handler) connectionCount() int {
	if h.connections == nil {
		return 0
	}
	return h.connections.TotalConnections()
}
