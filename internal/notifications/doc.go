// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package notifications holds the durable fallback for real-time updates and
the domain handlers that produce both.

Handlers subscribe to the event bus:

	leave_approved      requester     push + persist
	leave_rejected      requester     push + persist (with reviewer comments)
	leave_requested     all admins    push + persist
	attendance_updated  all admins    push only

Persistence does not depend on the push outcome: a user who was online still
gets a notification record, so the inbox is complete after reconnecting.

Stores:

  - MemoryStore: development and tests
  - DuckDBStore: default, shares the application database
  - BadgerStore: embedded key-value store (build with -tags wal)

NewStore picks one from config.NotificationsConfig.
*/
package notifications
