// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

// Package auth validates the HS256 bearer tokens issued by the HR backend's
// login endpoint.
//
// Tokens carry user_id, role, exp and iat. The same JWTManager validates the
// token sent in the WebSocket auth message and the Authorization header on
// the notification HTTP routes.
//
// # Usage
//
//	jwtManager, err := auth.NewJWTManager(&cfg.Security)
//	mw := auth.NewMiddleware(jwtManager)
//
//	r.With(mw.Authenticate).Get("/api/v2/notifications", h.ListNotifications)
//
// Role checks on top of authentication live in package authz.
//
// # Errors
//
// ValidateToken wraps ErrInvalidToken or ErrExpiredToken, and returns
// ErrMissingUserID for a valid signature with no subject.
package auth
