// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package main is the entry point for the Dayflow notification server.

The server turns HR domain events (leave requested, approved or rejected, and
attendance check-ins) into live WebSocket pushes and persisted fallback
notifications.

# Application Architecture

	RootSupervisor ("dayflow")
	├── DataSupervisor ("data-layer")
	│   └── Cache janitor (DIRECTORY_SOURCE=sql)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── Relay ingestor (RELAY_ENABLED=true)
	│   └── Connection drain
	└── APISupervisor ("api-layer")
	    └── HTTP server (chi router)

Initialization order:

 1. Configuration: Koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB, opened only when the store or directory needs it
 4. Notification store: memory, duckdb or badger (-tags wal)
 5. User directory: memory or SQL behind a circuit breaker and LRU cache
 6. Event bus and the leave/attendance handlers
 7. WebSocket registry, gateway and push dispatcher
 8. Relay: watermill gochannel or NATS JetStream (-tags nats), optionally
    against an embedded nats-server (RELAY_EMBEDDED=true)
 9. Casbin authorization and the chi router
10. Supervisor tree and HTTP server

# Build Tags

	go build ./cmd/server                    # memory and DuckDB stores
	go build -tags wal ./cmd/server          # adds the BadgerDB store
	go build -tags nats ./cmd/server         # adds the NATS relay transport

# Issuing a Test Token

	./server -token 42:Employee

prints a token signed with JWT_SECRET_KEY for user 42.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains, the relay
stops consuming, and open WebSockets are closed with 1001 "Server shutting
down".
*/
package main
