// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package directory resolves notification recipients and display names.

The notification handlers need two facts from the HR backend's user store:
which users are admins, and what a user's display name is. Directory
exposes exactly those two lookups.

# Implementations

  - SQLDirectory: reads users and profiles over database/sql. Admins are
    users whose role matches the configured admin role and who are not
    soft-deleted.
  - MemoryDirectory: fixed admin ids and names, used in development and
    tests.
  - BreakerDirectory: wraps another directory with a sony/gobreaker circuit
    breaker so a failing database is not hammered on every event.
  - CachedDirectory: wraps another directory with a TTL LRU cache.

New composes them according to configuration:

	Cached(Breaker(SQL))

# Name Resolution

DisplayName returns "" for users without a profile name and
ErrUserNotFound for unknown users. Callers fall back to "User {id}" in
both cases.
*/
package directory
