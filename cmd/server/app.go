// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/dayflow/internal/api"
	"github.com/tomtom215/dayflow/internal/auth"
	"github.com/tomtom215/dayflow/internal/authz"
	"github.com/tomtom215/dayflow/internal/config"
	"github.com/tomtom215/dayflow/internal/database"
	"github.com/tomtom215/dayflow/internal/directory"
	"github.com/tomtom215/dayflow/internal/events"
	"github.com/tomtom215/dayflow/internal/logging"
	"github.com/tomtom215/dayflow/internal/notifications"
	"github.com/tomtom215/dayflow/internal/relay"
	"github.com/tomtom215/dayflow/internal/supervisor/services"
	ws "github.com/tomtom215/dayflow/internal/websocket"
)

// app holds the wired components main hands to the supervisor tree.
type app struct {
	handler  *api.Handler
	router   http.Handler
	jwt      *auth.JWTManager
	registry *ws.Registry
	ingestor *relay.Ingestor
	janitor  services.ExpiringCache
	closers  []func() error
}

// buildApp wires storage, the directory, the event bus and its handlers,
// the WebSocket gateway, the optional relay and the HTTP router.
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	a.jwt = jwtManager

	var conn *sql.DB
	if needsDatabase(cfg) {
		db, err := database.New(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		conn = db.Conn()
	}

	store, closeStore, err := notifications.NewStore(ctx, &cfg.Notifications, conn)
	if err != nil {
		return nil, fmt.Errorf("notification store: %w", err)
	}
	a.closers = append(a.closers, closeStore)

	dir, err := directory.New(&cfg.Directory, conn)
	if err != nil {
		return nil, fmt.Errorf("directory: %w", err)
	}
	if c, isCache := dir.(services.ExpiringCache); isCache {
		a.janitor = c
	}

	a.registry = ws.NewRegistry()
	dispatcher := ws.NewDispatcher(a.registry)
	gateway := ws.NewGateway(a.registry, jwtManager, cfg.Realtime)

	bus := events.NewBus()
	notifications.NewHandlers(dispatcher, store, dir).Register(bus)

	var sink relay.Sink = relay.BusSink{Bus: bus}
	if cfg.Relay.Enabled {
		transport, err := relay.NewTransport(&cfg.Relay)
		if err != nil {
			return nil, fmt.Errorf("relay: %w", err)
		}
		a.closers = append(a.closers, transport.Close)
		a.ingestor = relay.NewIngestor(transport.Subscriber, cfg.Relay.Topic, bus)
		sink = relay.NewPublisher(transport.Publisher, cfg.Relay.Topic)
	}

	a.handler = api.NewHandler(cfg, api.Dependencies{
		Sessions:    gateway,
		Connections: dispatcher,
		Store:       store,
		Events:      sink,
	})

	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{
		PublisherRoles: cfg.Security.EventPublisherRoles,
		CacheSize:      256,
		CacheTTL:       cfg.Directory.CacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("authz: %w", err)
	}
	a.router = api.NewRouter(
		a.handler,
		auth.NewMiddleware(jwtManager),
		authz.NewMiddleware(enforcer),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)),
	)

	ok = true
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logging.Error().Err(err).Msg("Error during shutdown")
		}
	}
	a.closers = nil
}

func needsDatabase(cfg *config.Config) bool {
	return cfg.Notifications.Store == config.StoreDuckDB || cfg.Directory.Source == config.DirectorySQL
}

// parseTokenSpec parses "user_id:role".
func parseTokenSpec(spec string) (int64, string, error) {
	idPart, role, found := strings.Cut(spec, ":")
	if !found || strings.TrimSpace(role) == "" {
		return 0, "", errors.New("token spec must be user_id:role")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("invalid user id %q", idPart)
	}
	return id, strings.TrimSpace(role), nil
}
