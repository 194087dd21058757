// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package notifications

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/dayflow/internal/config"
)

// NewStore builds the store selected by cfg.Store. db is required for the
// duckdb store only. The returned func releases store resources.
func NewStore(ctx context.Context, cfg *config.NotificationsConfig, db *sql.DB) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreMemory:
		return NewMemoryStore(), noop, nil

	case config.StoreDuckDB:
		if db == nil {
			return nil, nil, fmt.Errorf("duckdb notification store requires a database connection")
		}
		s := NewDuckDBStore(db)
		if err := s.CreateTable(ctx); err != nil {
			return nil, nil, err
		}
		return s, noop, nil

	case config.StoreBadger:
		s, err := OpenBadgerStore(cfg.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown notification store %q", cfg.Store)
	}
}
