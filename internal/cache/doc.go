// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package cache provides a generic, thread-safe LRU cache with TTL expiry.

It backs the user directory so that admin lists and display names are not
re-read from the database for every leave or attendance event.

# Usage Example

	names := cache.NewLRU[int64, string](1000, 5*time.Minute)
	names.Add(42, "Jane Doe")

	if name, ok := names.Get(42); ok {
	    fmt.Println(name)
	}

# Expiry

Entries expire ttl after their last Add. Expired entries are removed lazily
by Get, or eagerly by CleanupExpired. Stats reports hit and miss counts.

# Thread Safety

All methods are safe for concurrent use.
*/
package cache
