// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/dayflow/internal/auth"
	"github.com/tomtom215/dayflow/internal/authz"
	"github.com/tomtom215/dayflow/internal/middleware"
)

// NewRouter wires every route.
//
//	GET  /health/live
//	GET  /health/ready
//	GET  /metrics
//	GET  /api/v2/ws                        (in-band token handshake)
//	GET  /api/v2/notifications             (bearer token)
//	PUT  /api/v2/notifications/{id}/read   (bearer token)
//	POST /api/v2/events                    (bearer token, publisher role)
func NewRouter(h *Handler, authMW *auth.Middleware, authzMW *authz.Middleware, chiMW *ChiMiddleware) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chiMW.CORS())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v2", func(r chi.Router) {
		r.Use(chiMW.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/ws", h.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)

			r.With(authzMW.Require(authz.ObjectNotifications, authz.ActionRead)).
				Get("/notifications", h.ListNotifications)
			r.With(authzMW.Require(authz.ObjectNotifications, authz.ActionUpdate)).
				Put("/notifications/{id}/read", h.MarkNotificationRead)
			r.With(authzMW.Require(authz.ObjectEvents, authz.ActionPublish)).
				Post("/events", h.PublishEvent)
		})
	})

	return r
}
