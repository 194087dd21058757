// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the notification service.
//
// Loading order (Koanf v2):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/dayflow/config.yaml)
//  3. Environment variables
//
// Example:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("invalid configuration")
//	}
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Security      SecurityConfig      `koanf:"security"`
	Database      DatabaseConfig      `koanf:"database"`
	Notifications NotificationsConfig `koanf:"notifications"`
	Realtime      RealtimeConfig      `koanf:"realtime"`
	Relay         RelayConfig         `koanf:"relay"`
	Directory     DirectoryConfig     `koanf:"directory"`
	Logging       LoggingConfig       `koanf:"logging"`
	Supervisor    SupervisorConfig    `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT (default: 8000)
//   - HTTP_HOST (default: 0.0.0.0)
//   - HTTP_TIMEOUT: read/write timeout for non-WebSocket requests (default: 30s)
//   - ENVIRONMENT: development or production (default: development)
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction reports whether production checks apply.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// SecurityConfig holds token validation, CORS and rate limit settings.
//
// Environment Variables:
//   - JWT_SECRET_KEY: HMAC secret shared with the token issuer (required)
//   - JWT_EXPIRATION_HOURS: lifetime of tokens issued by this service (default: 24)
//   - CORS_ORIGINS: comma-separated origins, also used for the WebSocket origin check
//   - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW / DISABLE_RATE_LIMIT
//   - EVENT_PUBLISHER_ROLES: roles allowed to POST domain events (default: Admin,Service)
type SecurityConfig struct {
	JWTSecret           string        `koanf:"jwt_secret"`
	TokenTTLHours       int           `koanf:"token_ttl_hours"`
	CORSOrigins         []string      `koanf:"cors_origins"`
	RateLimitReqs       int           `koanf:"rate_limit_reqs"`
	RateLimitWindow     time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled   bool          `koanf:"rate_limit_disabled"`
	EventPublisherRoles []string      `koanf:"event_publisher_roles"`
}

// TokenTTL returns the token lifetime as a duration.
func (s SecurityConfig) TokenTTL() time.Duration {
	return time.Duration(s.TokenTTLHours) * time.Hour
}

// DatabaseConfig holds DuckDB settings. The same database backs the
// notification table and, when directory.source is sql, the user lookups.
//
// Environment Variables:
//   - DUCKDB_PATH (default: /data/dayflow.duckdb)
//   - DUCKDB_MAX_MEMORY (default: 1GB)
//   - DUCKDB_THREADS: 0 uses DuckDB's default
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// Notification store backends.
const (
	StoreMemory = "memory"
	StoreDuckDB = "duckdb"
	StoreBadger = "badger"
)

// NotificationsConfig selects the fallback store and listing limits.
//
// Environment Variables:
//   - NOTIFICATION_STORE: memory, duckdb or badger (default: duckdb)
//   - NOTIFICATION_BADGER_PATH (default: /data/notifications)
//   - NOTIFICATION_PAGE_SIZE (default: 10)
//   - NOTIFICATION_MAX_PAGE_SIZE (default: 100)
type NotificationsConfig struct {
	Store           string `koanf:"store"`
	BadgerPath      string `koanf:"badger_path"`
	DefaultPageSize int    `koanf:"default_page_size"`
	MaxPageSize     int    `koanf:"max_page_size"`
}

// RealtimeConfig tunes WebSocket sessions.
//
// Environment Variables:
//   - WS_AUTH_TIMEOUT: time allowed for the auth message (default: 10s)
//   - WS_WRITE_WAIT: bound on every outbound frame (default: 10s)
//   - WS_PONG_WAIT: read deadline refreshed by pongs (default: 60s)
//   - WS_MAX_MESSAGE_SIZE: inbound frame limit in bytes (default: 64KB)
//   - WS_INBOUND_RATE / WS_INBOUND_BURST: per-connection inbound message limiter
type RealtimeConfig struct {
	AuthTimeout    time.Duration `koanf:"auth_timeout"`
	WriteWait      time.Duration `koanf:"write_wait"`
	PongWait       time.Duration `koanf:"pong_wait"`
	MaxMessageSize int64         `koanf:"max_message_size"`
	InboundRate    float64       `koanf:"inbound_rate"`
	InboundBurst   int           `koanf:"inbound_burst"`
}

// PingPeriod is derived from PongWait so a ping always lands before the deadline.
func (r RealtimeConfig) PingPeriod() time.Duration {
	return (r.PongWait * 9) / 10
}

// Relay transports.
const (
	RelayNATS    = "nats"
	RelayChannel = "channel"
)

// RelayConfig configures the event ingest relay, which feeds domain events
// published by other services into the local bus.
//
// Environment Variables:
//   - RELAY_ENABLED (default: false)
//   - RELAY_TRANSPORT: nats or channel (default: nats)
//   - NATS_URL (default: nats://127.0.0.1:4222)
//   - RELAY_TOPIC (default: dayflow.events)
//   - RELAY_DURABLE_NAME / RELAY_QUEUE_GROUP
//   - RELAY_JETSTREAM (default: true)
//   - RELAY_EMBEDDED: run an in-process NATS server on NATS_URL's host and port
//   - RELAY_STORE_DIR: JetStream storage for the embedded server (default: ./data/nats)
type RelayConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Transport   string `koanf:"transport"`
	URL         string `koanf:"url"`
	Topic       string `koanf:"topic"`
	DurableName string `koanf:"durable_name"`
	QueueGroup  string `koanf:"queue_group"`
	JetStream   bool   `koanf:"jetstream"`
	Embedded    bool   `koanf:"embedded"`
	StoreDir    string `koanf:"store_dir"`
}

// Directory sources.
const (
	DirectorySQL    = "sql"
	DirectoryMemory = "memory"
)

// DirectoryConfig controls user lookups (admin list and display names).
//
// Environment Variables:
//   - DIRECTORY_SOURCE: sql or memory (default: sql)
//   - DIRECTORY_ADMIN_ROLE (default: Admin)
//   - DIRECTORY_ADMIN_IDS: comma-separated ids for the memory source
//   - DIRECTORY_CACHE_SIZE / DIRECTORY_CACHE_TTL: display name cache
//   - DIRECTORY_BREAKER_THRESHOLD / DIRECTORY_BREAKER_TIMEOUT: circuit breaker
//   - DIRECTORY_QUERY_TIMEOUT (default: 3s)
type DirectoryConfig struct {
	Source           string        `koanf:"source"`
	AdminRole        string        `koanf:"admin_role"`
	AdminIDs         []int64       `koanf:"admin_ids"`
	CacheSize        int           `koanf:"cache_size"`
	CacheTTL         time.Duration `koanf:"cache_ttl"`
	BreakerThreshold uint32        `koanf:"breaker_threshold"`
	BreakerTimeout   time.Duration `koanf:"breaker_timeout"`
	QueryTimeout     time.Duration `koanf:"query_timeout"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SupervisorConfig mirrors suture's restart tuning.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}
