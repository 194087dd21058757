// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/dayflow/internal/logging"
)

// DuckDBStore implements Store on the shared DuckDB connection.
type DuckDBStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewDuckDBStore creates a DuckDB-backed store. Call CreateTable before use.
func NewDuckDBStore(db *sql.DB) *DuckDBStore {
	return &DuckDBStore{db: db, now: time.Now}
}

// CreateTable creates the notifications table and its id sequence if they
// do not exist.
func (s *DuckDBStore) CreateTable(ctx context.Context) error {
	schema := `
		CREATE SEQUENCE IF NOT EXISTS notifications_id_seq START 1;

		CREATE TABLE IF NOT EXISTS notifications (
			id BIGINT PRIMARY KEY DEFAULT nextval('notifications_id_seq'),
			user_id BIGINT NOT NULL,
			notification_type VARCHAR NOT NULL,
			message VARCHAR NOT NULL,
			related_entity_type VARCHAR,
			related_entity_id BIGINT,
			is_read BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
	`

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	logging.Info().Msg("notifications table created/verified")
	return nil
}

// Create inserts n and fills in its id and creation time.
func (s *DuckDBStore) Create(ctx context.Context, n *Notification) error {
	if err := validateNew(n); err != nil {
		return err
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO notifications
			(user_id, notification_type, message, related_entity_type, related_entity_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		n.UserID, n.NotificationType, n.Message,
		nullString(n.RelatedEntityType), nullInt64(n.RelatedEntityID),
		n.IsRead, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// List returns one page of the user's notifications, newest first.
func (s *DuckDBStore) List(ctx context.Context, q ListQuery) (*Page, error) {
	q, err := q.normalize()
	if err != nil {
		return nil, err
	}

	where := "user_id = ?"
	args := []interface{}{q.UserID}
	if q.UnreadOnly {
		where += " AND is_read = false"
	}

	page := &Page{Notifications: []Notification{}, Page: q.Page, PageSize: q.PageSize}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notifications WHERE "+where, args...).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}
	if page.UnreadCount, err = s.UnreadCount(ctx, q.UserID); err != nil {
		return nil, err
	}

	query := selectColumns + " FROM notifications WHERE " + where +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, append(args, q.PageSize, q.offset())...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		page.Notifications = append(page.Notifications, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return page, nil
}

// Get returns the notification with id.
func (s *DuckDBStore) Get(ctx context.Context, id int64) (*Notification, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" FROM notifications WHERE id = ?", id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return n, err
}

// MarkRead flags the notification as read if userID owns it.
func (s *DuckDBStore) MarkRead(ctx context.Context, id, userID int64) (*Notification, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrForbidden
	}
	if n.IsRead {
		return n, nil
	}

	if _, err := s.db.ExecContext(ctx, "UPDATE notifications SET is_read = true WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	n.IsRead = true
	return n, nil
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *DuckDBStore) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = false", userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// Ping checks the database connection.
func (s *DuckDBStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const selectColumns = `SELECT id, user_id, notification_type, message, related_entity_type, related_entity_id, is_read, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNotification(row rowScanner) (*Notification, error) {
	var (
		n          Notification
		entityType sql.NullString
		entityID   sql.NullInt64
	)
	err := row.Scan(&n.ID, &n.UserID, &n.NotificationType, &n.Message, &entityType, &entityID, &n.IsRead, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan notification: %w", err)
	}
	if entityType.Valid {
		n.RelatedEntityType = stringPtr(entityType.String)
	}
	if entityID.Valid {
		n.RelatedEntityID = int64Ptr(entityID.Int64)
	}
	n.CreatedAt = n.CreatedAt.UTC()
	return &n, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
