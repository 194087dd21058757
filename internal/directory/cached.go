// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package directory

import (
	"context"
	"time"

	"github.com/tomtom215/dayflow/internal/cache"
	"github.com/tomtom215/dayflow/internal/metrics"
)

const adminsKey = "admins"

// CachedDirectory memoizes successful lookups for ttl. Errors are never
// cached, so a transient failure is retried on the next event.
type CachedDirectory struct {
	next   Directory
	names  *cache.LRU[int64, string]
	admins *cache.LRU[string, []int64]
}

// NewCachedDirectory wraps next with a name cache of size entries.
func NewCachedDirectory(next Directory, size int, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{
		next:   next,
		names:  cache.NewLRU[int64, string](size, ttl),
		admins: cache.NewLRU[string, []int64](1, ttl),
	}
}

// AdminIDs implements Directory.
func (d *CachedDirectory) AdminIDs(ctx context.Context) ([]int64, error) {
	if ids, ok := d.admins.Get(adminsKey); ok {
		metrics.DirectoryLookups.WithLabelValues("admins", "cached").Inc()
		return cloneIDs(ids), nil
	}

	ids, err := d.next.AdminIDs(ctx)
	if err != nil {
		metrics.DirectoryLookups.WithLabelValues("admins", "error").Inc()
		return nil, err
	}
	metrics.DirectoryLookups.WithLabelValues("admins", "ok").Inc()
	d.admins.Add(adminsKey, cloneIDs(ids))
	return ids, nil
}

// DisplayName implements Directory.
func (d *CachedDirectory) DisplayName(ctx context.Context, userID int64) (string, error) {
	if name, ok := d.names.Get(userID); ok {
		metrics.DirectoryLookups.WithLabelValues("name", "cached").Inc()
		return name, nil
	}

	name, err := d.next.DisplayName(ctx, userID)
	if err != nil {
		metrics.DirectoryLookups.WithLabelValues("name", "error").Inc()
		return "", err
	}
	metrics.DirectoryLookups.WithLabelValues("name", "ok").Inc()
	d.names.Add(userID, name)
	return name, nil
}

// Invalidate drops every cached entry.
func (d *CachedDirectory) Invalidate() {
	d.names.Clear()
	d.admins.Clear()
}

// CleanupExpired removes expired entries and returns how many were dropped.
func (d *CachedDirectory) CleanupExpired() int {
	return d.names.CleanupExpired() + d.admins.CleanupExpired()
}

func cloneIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}
