// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dayflow/internal/auth"
	"github.com/tomtom215/dayflow/internal/authz"
	"github.com/tomtom215/dayflow/internal/config"
	"github.com/tomtom215/dayflow/internal/directory"
	"github.com/tomtom215/dayflow/internal/events"
	"github.com/tomtom215/dayflow/internal/notifications"
	"github.com/tomtom215/dayflow/internal/relay"
	"github.com/tomtom215/dayflow/internal/websocket"
)

const (
	testSecret = "test-secret-key-at-least-32-characters"
	testOrigin = "http://localhost:3000"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "development"},
		Security: config.SecurityConfig{
			JWTSecret:           testSecret,
			TokenTTLHours:       1,
			CORSOrigins:         []string{testOrigin},
			RateLimitDisabled:   true,
			EventPublisherRoles: []string{auth.RoleAdmin, auth.RoleService},
		},
		Notifications: config.NotificationsConfig{
			Store:           config.StoreMemory,
			DefaultPageSize: 10,
			MaxPageSize:     50,
		},
		Realtime: config.RealtimeConfig{
			AuthTimeout:    2 * time.Second,
			WriteWait:      time.Second,
			PongWait:       5 * time.Second,
			MaxMessageSize: 4096,
			InboundRate:    100,
			InboundBurst:   100,
		},
	}
}

// testEnv is the full HTTP stack over in-memory collaborators.
type testEnv struct {
	cfg      *config.Config
	jwt      *auth.JWTManager
	store    *notifications.MemoryStore
	registry *websocket.Registry
	bus      *events.Bus
	authz    *authz.Middleware
	router   http.Handler
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	store := notifications.NewMemoryStore()
	registry := websocket.NewRegistry()
	dispatcher := websocket.NewDispatcher(registry)
	dir := directory.NewMemoryDirectory([]int64{1, 2}, map[int64]string{123: "Jane Doe"})

	bus := events.NewBus()
	notifications.NewHandlers(dispatcher, store, dir).Register(bus)

	h := NewHandler(cfg, Dependencies{
		Sessions:    websocket.NewGateway(registry, jwtManager, cfg.Realtime),
		Connections: dispatcher,
		Store:       store,
		Events:      relay.BusSink{Bus: bus},
	})
	chiMW := NewChiMiddleware(ChiMiddlewareConfigFrom(&cfg.Security))
	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{PublisherRoles: cfg.Security.EventPublisherRoles})
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	return &testEnv{
		cfg:      cfg,
		jwt:      jwtManager,
		store:    store,
		registry: registry,
		bus:      bus,
		authz:    authz.NewMiddleware(enforcer),
		router:   NewRouter(h, auth.NewMiddleware(jwtManager), authz.NewMiddleware(enforcer), chiMW),
	}
}

// withHandler rebuilds the router around h, keeping the env's auth, authz
// and CORS settings.
func (e *testEnv) withHandler(h *Handler) {
	e.router = NewRouter(h, auth.NewMiddleware(e.jwt), e.authz, NewChiMiddleware(ChiMiddlewareConfigFrom(&e.cfg.Security)))
}

func (e *testEnv) token(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := e.jwt.GenerateToken(userID, role)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return tok
}

// do sends a request through the router. A non-empty token becomes a bearer
// header; a non-nil body is JSON encoded.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(b); err != nil {
				t.Fatal(err)
			}
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seed(t *testing.T, userID int64, msg string) *notifications.Notification {
	t.Helper()
	n := &notifications.Notification{UserID: userID, NotificationType: "leave_approved", Message: msg}
	if err := e.store.Create(context.Background(), n); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return n
}

// decodeResponse unmarshals the envelope, decoding Data into data when non-nil.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, data interface{}) APIResponse {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *APIError       `json:"error"`
		Meta    *APIMeta        `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("response is not JSON: %s", w.Body.String())
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
	}
	return APIResponse{Success: raw.Success, Error: raw.Error, Meta: raw.Meta}
}
