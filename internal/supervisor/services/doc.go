// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package services adapts server components to suture.Service.

Each wrapper translates a component lifecycle into Serve(ctx) error and
names itself through fmt.Stringer for suture's event log:

  - HTTPServerService: ListenAndServe plus graceful Shutdown on cancel.
  - ConnectionDrainService: closes every WebSocket with 1001 on cancel.
  - CacheJanitorService: periodic CleanupExpired on the directory cache.

relay.Ingestor already implements Serve and is added to the tree as is.
*/
package services
