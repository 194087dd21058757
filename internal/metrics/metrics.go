// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Event bus
	EventsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayflow_events_dispatched_total",
			Help: "Total number of events dispatched on the in-process bus",
		},
		[]string{"event_type"},
	)

	EventHandlerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayflow_event_handler_failures_total",
			Help: "Handler invocations that returned an error or panicked",
		},
		[]string{"event_type", "reason"}, // reason: "error", "panic"
	)

	EventHandlerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dayflow_event_handler_duration_seconds",
			Help:    "Duration of a single handler invocation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"event_type"},
	)

	// WebSocket
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dayflow_websocket_connections",
			Help: "Authenticated WebSocket connections currently registered",
		},
	)

	WSHandshakes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayflow_websocket_handshakes_total",
			Help: "WebSocket handshake outcomes",
		},
		[]string{"result"}, // success, not_auth_message, missing_token, invalid_token, auth_failed, timeout
	)

	PushAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayflow_push_attempts_total",
			Help: "Push dispatch calls by outcome",
		},
		[]string{"update_type", "result"}, // delivered, no_connection, failed
	)

	PushSendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dayflow_push_send_failures_total",
			Help: "Individual connection sends that failed and were pruned",
		},
	)

	// Notifications
	NotificationsStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayflow_notifications_stored_total",
			Help: "Fallback notifications persisted",
		},
		[]string{"notification_type"},
	)

	NotificationStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayflow_notification_store_errors_total",
			Help: "Notification store operation failures",
		},
		[]string{"operation"},
	)

	// Directory
	DirectoryLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayflow_directory_lookups_total",
			Help: "User directory lookups by kind and result",
		},
		[]string{"kind", "result"}, // kind: admins, name; result: ok, cached, error
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dayflow_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Authorization
	AuthzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayflow_authz_decisions_total",
			Help: "Authorization decisions by object, action and result",
		},
		[]string{"object", "action", "result"}, // allowed, denied
	)

	// Relay
	RelayMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayflow_relay_messages_total",
			Help: "Messages consumed by the event ingest relay",
		},
		[]string{"result"}, // dispatched, malformed
	)

	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayflow_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dayflow_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dayflow_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)
)

// RecordHandler records one handler invocation. reason is "" on success.
func RecordHandler(eventType string, duration time.Duration, reason string) {
	EventHandlerDuration.WithLabelValues(eventType).Observe(duration.Seconds())
	if reason != "" {
		EventHandlerFailures.WithLabelValues(eventType, reason).Inc()
	}
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
