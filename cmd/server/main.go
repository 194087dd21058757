// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/dayflow/internal/auth"
	"github.com/tomtom215/dayflow/internal/config"
	"github.com/tomtom215/dayflow/internal/logging"
	"github.com/tomtom215/dayflow/internal/supervisor"
	"github.com/tomtom215/dayflow/internal/supervisor/services"
)

func main() {
	tokenFlag := flag.String("token", "", "print a signed token for user_id:role and exit")
	flag.Parse()

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if *tokenFlag != "" {
		if err := printToken(os.Stdout, cfg, *tokenFlag); err != nil {
			logging.Fatal().Err(err).Msg("Failed to issue token")
		}
		return
	}

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("notification_store", cfg.Notifications.Store).
		Str("directory_source", cfg.Directory.Source).
		Bool("relay_enabled", cfg.Relay.Enabled).
		Msg("Starting Dayflow notification server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := buildApp(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer app.Close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
		// WebSocket sessions end when the tree stops
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	if app.janitor != nil {
		tree.AddDataService(services.NewCacheJanitorService(app.janitor, cfg.Directory.CacheTTL))
	}
	if app.ingestor != nil {
		tree.AddMessagingService(app.ingestor)
		logging.Info().Str("topic", cfg.Relay.Topic).Str("transport", cfg.Relay.Transport).Msg("Relay ingestor added to supervisor tree")
	}
	tree.AddMessagingService(services.NewConnectionDrainService(app.registry))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
		cancel()
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// printToken issues a token for "user_id:role". Intended for local testing
// against a development server.
func printToken(out io.Writer, cfg *config.Config, spec string) error {
	userID, role, err := parseTokenSpec(spec)
	if err != nil {
		return err
	}
	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return err
	}
	token, err := jwtManager.GenerateToken(userID, role)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
