// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/dayflow/config.yaml",
	"/etc/dayflow/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			JWTSecret:           "",
			TokenTTLHours:       24,
			CORSOrigins:         []string{"*"},
			RateLimitReqs:       100,
			RateLimitWindow:     time.Minute,
			RateLimitDisabled:   false,
			EventPublisherRoles: []string{"Admin", "Service"},
		},
		Database: DatabaseConfig{
			Path:      "/data/dayflow.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Notifications: NotificationsConfig{
			Store:           StoreDuckDB,
			BadgerPath:      "/data/notifications",
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
		Realtime: RealtimeConfig{
			AuthTimeout:    10 * time.Second,
			WriteWait:      10 * time.Second,
			PongWait:       60 * time.Second,
			MaxMessageSize: 64 * 1024,
			InboundRate:    5,
			InboundBurst:   20,
		},
		Relay: RelayConfig{
			Enabled:     false,
			Transport:   RelayNATS,
			URL:         "nats://127.0.0.1:4222",
			Topic:       "dayflow.events",
			DurableName: "dayflow-notifier",
			QueueGroup:  "notifier",
			JetStream:   true,
			StoreDir:    "./data/nats",
		},
		Directory: DirectoryConfig{
			Source:           DirectorySQL,
			AdminRole:        "Admin",
			CacheSize:        1000,
			CacheTTL:         5 * time.Minute,
			BreakerThreshold: 5,
			BreakerTimeout:   30 * time.Second,
			QueryTimeout:     3 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration with precedence ENV > file > defaults
// and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// JWT_SECRET_KEY -> security.jwt_secret, NATS_URL -> relay.url, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.event_publisher_roles",
	"directory.admin_ids",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config keys.
// Variables not listed here are ignored so unrelated process environment
// never leaks into the configuration.
var envMappings = map[string]string{
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	"jwt_secret_key":        "security.jwt_secret",
	"jwt_expiration_hours":  "security.token_ttl_hours",
	"cors_origins":          "security.cors_origins",
	"rate_limit_requests":   "security.rate_limit_reqs",
	"rate_limit_window":     "security.rate_limit_window",
	"disable_rate_limit":    "security.rate_limit_disabled",
	"event_publisher_roles": "security.event_publisher_roles",

	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"notification_store":         "notifications.store",
	"notification_badger_path":   "notifications.badger_path",
	"notification_page_size":     "notifications.default_page_size",
	"notification_max_page_size": "notifications.max_page_size",

	"ws_auth_timeout":     "realtime.auth_timeout",
	"ws_write_wait":       "realtime.write_wait",
	"ws_pong_wait":        "realtime.pong_wait",
	"ws_max_message_size": "realtime.max_message_size",
	"ws_inbound_rate":     "realtime.inbound_rate",
	"ws_inbound_burst":    "realtime.inbound_burst",

	"relay_enabled":      "relay.enabled",
	"relay_transport":    "relay.transport",
	"nats_url":           "relay.url",
	"relay_topic":        "relay.topic",
	"relay_durable_name": "relay.durable_name",
	"relay_queue_group":  "relay.queue_group",
	"relay_jetstream":    "relay.jetstream",
	"relay_embedded":     "relay.embedded",
	"relay_store_dir":    "relay.store_dir",

	"directory_source":            "directory.source",
	"directory_admin_role":        "directory.admin_role",
	"directory_admin_ids":         "directory.admin_ids",
	"directory_cache_size":        "directory.cache_size",
	"directory_cache_ttl":         "directory.cache_ttl",
	"directory_breaker_threshold": "directory.breaker_threshold",
	"directory_breaker_timeout":   "directory.breaker_timeout",
	"directory_query_timeout":     "directory.query_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc returns "" for unknown variables, which koanf skips.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
