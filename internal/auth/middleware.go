// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dayflow/internal/logging"
)

type contextKey string

// ClaimsContextKey is where Authenticate stores the validated *Claims.
const ClaimsContextKey contextKey = "claims"

// Middleware enforces bearer-token authentication on HTTP routes.
type Middleware struct {
	jwtManager *JWTManager
}

// NewMiddleware creates authentication middleware backed by jwtManager.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwtManager: jwtManager}
}

// Authenticate rejects requests without a valid bearer token and stores the
// claims in the request context. Later log lines from logging.Ctx carry the
// caller's user_id.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, msg := extractBearerToken(r)
		if token == "" {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", msg)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("token validation failed")
			msg = "Could not validate credentials"
			if errors.Is(err, ErrExpiredToken) {
				msg = "Token has expired"
			}
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", msg)
			return
		}

		ctx := logging.ContextWithUserID(ContextWithClaims(r.Context(), claims), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ContextWithClaims stores claims in ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext returns the authenticated claims or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*Claims)
	return claims
}

// extractBearerToken returns the token, or "" and a client-facing reason.
func extractBearerToken(r *http.Request) (token, reason string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", "Not authenticated"
	}
	scheme, rest, ok := strings.Cut(header, " ")
	rest = strings.TrimSpace(rest)
	if !ok || !strings.EqualFold(scheme, "Bearer") || rest == "" {
		return "", "Invalid authorization header"
	}
	return rest, ""
}

type authErrorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	var body authErrorBody
	body.Error.Code = code
	body.Error.Message = message
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("failed to encode auth error")
	}
}
