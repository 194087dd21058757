// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

// Package metrics declares the Prometheus collectors for the notification
// pipeline. Collectors are registered on the default registry through
// promauto and exposed at /metrics.
//
// Families:
//   - dayflow_events_*: bus dispatches and handler outcomes
//   - dayflow_websocket_*, dayflow_push_*: live delivery
//   - dayflow_notifications_*: fallback store writes
//   - dayflow_directory_*, dayflow_circuit_breaker_state: user lookups
//   - dayflow_relay_*: ingest relay
//   - dayflow_api_*: HTTP requests
package metrics
