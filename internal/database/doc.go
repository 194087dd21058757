// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

// Package database opens and tunes the DuckDB connection pool shared by the
// notification store and the SQL user directory. Table schemas belong to
// the packages that own them.
package database
