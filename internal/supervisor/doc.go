// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package supervisor runs the long-lived services of the notification server
under a suture v4 supervisor tree.

	RootSupervisor ("dayflow")
	├── DataSupervisor ("data-layer")
	│   └── CacheJanitorService (directory source sql)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── relay.Ingestor (RELAY_ENABLED)
	│   └── ConnectionDrainService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. Supervisor events are logged
through sutureslog, which receives the zerolog-backed slog logger from
logging.NewSlogLogger.

Shutdown is driven by the context passed to Serve: the HTTP server drains,
the relay stops consuming, and every open WebSocket is closed with 1001.
*/
package supervisor
