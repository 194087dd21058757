// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// minJWTSecretLength matches the HS256 key size.
const minJWTSecretLength = 32

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateNotifications,
		c.validateRealtime,
		c.validateRelay,
		c.validateDirectory,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Server.IsProduction() && len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET_KEY must be at least %d characters in production", minJWTSecretLength)
	}
	if c.Security.TokenTTLHours <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be positive, got %d", c.Security.TokenTTLHours)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if c.Server.IsProduction() {
		for _, o := range c.Security.CORSOrigins {
			if o == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * in production")
			}
		}
	}
	return nil
}

func (c *Config) validateNotifications() error {
	n := c.Notifications
	switch n.Store {
	case StoreMemory, StoreDuckDB:
	case StoreBadger:
		if n.BadgerPath == "" {
			return fmt.Errorf("NOTIFICATION_BADGER_PATH is required when NOTIFICATION_STORE=badger")
		}
	default:
		return fmt.Errorf("NOTIFICATION_STORE must be memory, duckdb or badger, got %q", n.Store)
	}
	if n.MaxPageSize < 1 || n.MaxPageSize > 100 {
		return fmt.Errorf("NOTIFICATION_MAX_PAGE_SIZE must be between 1 and 100, got %d", n.MaxPageSize)
	}
	if n.DefaultPageSize < 1 || n.DefaultPageSize > n.MaxPageSize {
		return fmt.Errorf("NOTIFICATION_PAGE_SIZE must be between 1 and %d, got %d", n.MaxPageSize, n.DefaultPageSize)
	}
	return nil
}

func (c *Config) validateRealtime() error {
	r := c.Realtime
	if r.AuthTimeout <= 0 || r.WriteWait <= 0 || r.PongWait <= 0 {
		return fmt.Errorf("WS_AUTH_TIMEOUT, WS_WRITE_WAIT and WS_PONG_WAIT must be positive")
	}
	if r.MaxMessageSize <= 0 {
		return fmt.Errorf("WS_MAX_MESSAGE_SIZE must be positive")
	}
	if r.InboundRate <= 0 || r.InboundBurst <= 0 {
		return fmt.Errorf("WS_INBOUND_RATE and WS_INBOUND_BURST must be positive")
	}
	return nil
}

func (c *Config) validateRelay() error {
	if !c.Relay.Enabled {
		return nil
	}
	if c.Relay.Topic == "" {
		return fmt.Errorf("RELAY_TOPIC is required when RELAY_ENABLED=true")
	}
	switch c.Relay.Transport {
	case RelayChannel:
		return nil
	case RelayNATS:
		u, err := url.Parse(c.Relay.URL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("NATS_URL is invalid: %q", c.Relay.URL)
		}
		if u.Scheme != "nats" && u.Scheme != "tls" {
			return fmt.Errorf("NATS_URL must use nats:// or tls://, got %q", u.Scheme)
		}
		if c.Relay.Embedded && c.Relay.JetStream && c.Relay.StoreDir == "" {
			return fmt.Errorf("RELAY_STORE_DIR is required when RELAY_EMBEDDED=true")
		}
		return nil
	default:
		return fmt.Errorf("RELAY_TRANSPORT must be nats or channel, got %q", c.Relay.Transport)
	}
}

func (c *Config) validateDirectory() error {
	d := c.Directory
	switch d.Source {
	case DirectorySQL:
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DIRECTORY_SOURCE=sql")
		}
	case DirectoryMemory:
	default:
		return fmt.Errorf("DIRECTORY_SOURCE must be sql or memory, got %q", d.Source)
	}
	if strings.TrimSpace(d.AdminRole) == "" {
		return fmt.Errorf("DIRECTORY_ADMIN_ROLE must not be empty")
	}
	if d.BreakerThreshold == 0 {
		return fmt.Errorf("DIRECTORY_BREAKER_THRESHOLD must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
