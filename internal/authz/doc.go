// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package authz decides which roles may call which API operations, using a
Casbin RBAC model embedded in the binary.

The embedded policy lets every authenticated role read and mark its own
notifications. Publishing events is granted per role from
EVENT_PUBLISHER_ROLES when the enforcer is built:

	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{
		PublisherRoles: cfg.Security.EventPublisherRoles,
		CacheSize:      256,
		CacheTTL:       5 * time.Minute,
	})
	mw := authz.NewMiddleware(enforcer)
	r.With(mw.Require(authz.ObjectEvents, authz.ActionPublish)).Post("/events", h.PublishEvent)

Subjects are the role claim of the bearer token, so Require must run after
auth.Middleware.Authenticate. Decisions are cached in an LRU keyed by
(role, object, action).
*/
package authz
