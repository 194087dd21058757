// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package services

import (
	"context"
	"time"

	"github.com/tomtom215/dayflow/internal/logging"
)

// ExpiringCache matches directory.CachedDirectory.CleanupExpired.
type ExpiringCache interface {
	CleanupExpired() int
}

// CacheJanitorService evicts expired cache entries on a fixed interval so
// entries that are never read again do not pin memory until capacity
// eviction.
type CacheJanitorService struct {
	cache    ExpiringCache
	interval time.Duration
	name     string
}

// NewCacheJanitorService creates the janitor. Non-positive intervals become 1m.
func NewCacheJanitorService(cache ExpiringCache, interval time.Duration) *CacheJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitorService{cache: cache, interval: interval, name: "cache-janitor"}
}

// Serve implements suture.Service.
func (j *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := j.cache.CleanupExpired(); n > 0 {
				logging.Debug().Int("removed", n).Msg("expired cache entries removed")
			}
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (j *CacheJanitorService) String() string {
	return j.name
}
