// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Security.TokenTTLHours != 24 {
		t.Errorf("Security.TokenTTLHours = %d, want 24", cfg.Security.TokenTTLHours)
	}
	if cfg.Notifications.DefaultPageSize != 10 || cfg.Notifications.MaxPageSize != 100 {
		t.Errorf("page sizes = %d/%d, want 10/100",
			cfg.Notifications.DefaultPageSize, cfg.Notifications.MaxPageSize)
	}
	if cfg.Notifications.Store != StoreDuckDB {
		t.Errorf("Notifications.Store = %q, want duckdb", cfg.Notifications.Store)
	}
	if cfg.Directory.AdminRole != "Admin" {
		t.Errorf("Directory.AdminRole = %q, want Admin", cfg.Directory.AdminRole)
	}
	if got := cfg.Realtime.PingPeriod(); got != 54*time.Second {
		t.Errorf("PingPeriod = %v, want 54s", got)
	}
	if cfg.Relay.Enabled {
		t.Error("Relay should be disabled by default")
	}
}

func TestLoadWithKoanf_RequiresSecret(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("expected error without JWT_SECRET_KEY")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET_KEY") {
		t.Errorf("error = %v, want mention of JWT_SECRET_KEY", err)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("JWT_SECRET_KEY", testSecret)
	t.Setenv("JWT_EXPIRATION_HOURS", "12")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("NOTIFICATION_STORE", "memory")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("DIRECTORY_SOURCE", "memory")
	t.Setenv("DIRECTORY_ADMIN_IDS", "1,7")
	t.Setenv("WS_AUTH_TIMEOUT", "3s")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.Security.JWTSecret != testSecret {
		t.Errorf("JWTSecret not loaded from env")
	}
	if cfg.Security.TokenTTL() != 12*time.Hour {
		t.Errorf("TokenTTL = %v, want 12h", cfg.Security.TokenTTL())
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Notifications.Store != StoreMemory {
		t.Errorf("Store = %q, want memory", cfg.Notifications.Store)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if len(cfg.Directory.AdminIDs) != 2 || cfg.Directory.AdminIDs[1] != 7 {
		t.Errorf("AdminIDs = %v", cfg.Directory.AdminIDs)
	}
	if cfg.Realtime.AuthTimeout != 3*time.Second {
		t.Errorf("AuthTimeout = %v, want 3s", cfg.Realtime.AuthTimeout)
	}
}

func TestLoadWithKoanf_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
security:
  jwt_secret: ` + testSecret + `
notifications:
  store: badger
  badger_path: /tmp/notif
relay:
  enabled: true
  transport: channel
  topic: hr.events
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	unsetenv(t, "JWT_SECRET_KEY")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Notifications.Store != StoreBadger || cfg.Notifications.BadgerPath != "/tmp/notif" {
		t.Errorf("notifications = %+v", cfg.Notifications)
	}
	if !cfg.Relay.Enabled || cfg.Relay.Topic != "hr.events" {
		t.Errorf("relay = %+v", cfg.Relay)
	}
	// Environment wins over the file.
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"JWT_SECRET_KEY", "security.jwt_secret"},
		{"NATS_URL", "relay.url"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}
