// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package middleware provides HTTP middleware shared by every route.

Key Components:

  - RequestID: UUID-based request tracking, echoed in X-Request-ID and
    propagated to the logging context together with a correlation id
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

Both have the func(http.Handler) http.Handler shape expected by chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

The metrics wrapper forwards http.Hijacker so the WebSocket endpoint can sit
behind it.
*/
package middleware
