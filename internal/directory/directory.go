// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/dayflow/internal/config"
)

// ErrUserNotFound is returned by DisplayName for an unknown user id.
var ErrUserNotFound = errors.New("user not found")

// Directory answers the two questions the notification handlers ask of
// the user store.
type Directory interface {
	// AdminIDs returns the ids of every active admin, ascending.
	AdminIDs(ctx context.Context) ([]int64, error)

	// DisplayName returns "First Last" for userID, or "" when the user has
	// no profile name.
	DisplayName(ctx context.Context, userID int64) (string, error)
}

// New builds the directory selected by cfg.Source. SQL directories are
// wrapped in a circuit breaker and an LRU cache; db is required for them.
func New(cfg *config.DirectoryConfig, db *sql.DB) (Directory, error) {
	switch cfg.Source {
	case config.DirectoryMemory:
		return NewMemoryDirectory(cfg.AdminIDs, nil), nil

	case config.DirectorySQL:
		if db == nil {
			return nil, fmt.Errorf("sql directory requires a database connection")
		}
		var d Directory = NewSQLDirectory(db, cfg.AdminRole, cfg.QueryTimeout)
		d = NewBreakerDirectory(d, "directory", cfg.BreakerThreshold, cfg.BreakerTimeout)
		return NewCachedDirectory(d, cfg.CacheSize, cfg.CacheTTL), nil

	default:
		return nil, fmt.Errorf("unknown directory source %q", cfg.Source)
	}
}
