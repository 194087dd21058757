// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = testSecret
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults with secret", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"missing secret", func(c *Config) { c.Security.JWTSecret = "" }, "JWT_SECRET_KEY"},
		{"short secret in production", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.CORSOrigins = []string{"https://hr.example.com"}
			c.Security.JWTSecret = "short"
		}, "at least 32"},
		{"wildcard cors in production", func(c *Config) {
			c.Server.Environment = "production"
		}, "CORS_ORIGINS"},
		{"unknown store", func(c *Config) { c.Notifications.Store = "redis" }, "NOTIFICATION_STORE"},
		{"badger without path", func(c *Config) {
			c.Notifications.Store = StoreBadger
			c.Notifications.BadgerPath = ""
		}, "NOTIFICATION_BADGER_PATH"},
		{"page size above max", func(c *Config) { c.Notifications.DefaultPageSize = 500 }, "NOTIFICATION_PAGE_SIZE"},
		{"zero auth timeout", func(c *Config) { c.Realtime.AuthTimeout = 0 }, "WS_AUTH_TIMEOUT"},
		{"relay bad url", func(c *Config) {
			c.Relay.Enabled = true
			c.Relay.URL = "http://nats:4222"
		}, "NATS_URL"},
		{"relay channel ok", func(c *Config) {
			c.Relay.Enabled = true
			c.Relay.Transport = RelayChannel
		}, ""},
		{"unknown directory", func(c *Config) { c.Directory.Source = "ldap" }, "DIRECTORY_SOURCE"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8000}
	if got := s.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q", got)
	}
}
