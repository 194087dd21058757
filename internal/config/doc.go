// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

// Package config loads and validates configuration for the Dayflow
// notification service.
//
// Configuration is layered with Koanf v2: struct defaults, then an optional
// YAML file, then environment variables. Only variables listed in the
// environment mapping are read, so names stay compatible with the rest of
// the HR backend (JWT_SECRET_KEY and JWT_EXPIRATION_HOURS are shared with the
// token issuer).
//
// # Example config.yaml
//
//	server:
//	  port: 8000
//	security:
//	  jwt_secret: change-me-to-a-32-byte-secret-value
//	  cors_origins: ["https://hr.example.com"]
//	notifications:
//	  store: duckdb
//	realtime:
//	  auth_timeout: 10s
//	relay:
//	  enabled: true
//	  url: nats://nats:4222
//
// Validate is run by LoadWithKoanf; the first failing section is returned.
package config
