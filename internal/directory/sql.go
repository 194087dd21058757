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
	"strings"
	"time"
)

const (
	adminIDsQuery = `
		SELECT id FROM users
		WHERE role = ? AND deleted_at IS NULL
		ORDER BY id`

	displayNameQuery = `
		SELECT p.first_name, p.last_name
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = ?`
)

// SQLDirectory reads the HR backend's users and profiles tables.
type SQLDirectory struct {
	db        *sql.DB
	adminRole string
	timeout   time.Duration
}

// NewSQLDirectory creates a directory over db. Users whose role equals
// adminRole are admins. Each query is bounded by timeout when positive.
func NewSQLDirectory(db *sql.DB, adminRole string, timeout time.Duration) *SQLDirectory {
	return &SQLDirectory{db: db, adminRole: adminRole, timeout: timeout}
}

func (d *SQLDirectory) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.timeout)
}

// AdminIDs implements Directory. Soft-deleted users are excluded.
func (d *SQLDirectory) AdminIDs(ctx context.Context) ([]int64, error) {
	ctx, cancel := d.queryContext(ctx)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, adminIDsQuery, d.adminRole)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan admin id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin users: %w", err)
	}
	return ids, nil
}

// DisplayName implements Directory.
func (d *SQLDirectory) DisplayName(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := d.queryContext(ctx)
	defer cancel()

	var first, last sql.NullString
	err := d.db.QueryRowContext(ctx, displayNameQuery, userID).Scan(&first, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query display name for user %d: %w", userID, err)
	}
	return strings.TrimSpace(first.String + " " + last.String), nil
}
