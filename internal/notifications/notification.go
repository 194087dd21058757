// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Paging limits for List.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// RelatedLeaveRequest is the related_entity_type of leave notifications.
const RelatedLeaveRequest = "leave_request"

var (
	// ErrNotFound is returned when a notification id does not exist.
	ErrNotFound = errors.New("notification not found")

	// ErrForbidden is returned when a user touches someone else's notification.
	ErrForbidden = errors.New("notification belongs to another user")

	// ErrInvalidQuery is returned for out-of-range paging parameters.
	ErrInvalidQuery = errors.New("invalid notification query")
)

// Notification is the durable fallback record of an event for one user.
type Notification struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	NotificationType  string    `json:"notification_type"`
	Message           string    `json:"message"`
	RelatedEntityType *string   `json:"related_entity_type"`
	RelatedEntityID   *int64    `json:"related_entity_id"`
	IsRead            bool      `json:"is_read"`
	CreatedAt         time.Time `json:"created_at"`
}

// ListQuery selects one page of a user's notifications.
// Zero Page and PageSize take the defaults.
type ListQuery struct {
	UserID     int64
	Page       int
	PageSize   int
	UnreadOnly bool
}

// Page is one page of notifications, newest first. Total honours
// UnreadOnly; UnreadCount is always the user's overall unread count.
type Page struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
	UnreadCount   int            `json:"unread_count"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
}

// Store persists notifications.
type Store interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, q ListQuery) (*Page, error)
	Get(ctx context.Context, id int64) (*Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (*Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	Ping(ctx context.Context) error
}

// normalize fills defaults and rejects out-of-range paging.
func (q ListQuery) normalize() (ListQuery, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if q.Page < 1 {
		return q, fmt.Errorf("%w: page must be >= 1", ErrInvalidQuery)
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return q, fmt.Errorf("%w: page_size must be between 1 and %d", ErrInvalidQuery, MaxPageSize)
	}
	return q, nil
}

func (q ListQuery) offset() int {
	return (q.Page - 1) * q.PageSize
}

// validateNew checks the fields every stored notification needs.
func validateNew(n *Notification) error {
	if n == nil {
		return fmt.Errorf("notification cannot be nil")
	}
	if n.UserID <= 0 {
		return fmt.Errorf("notification user_id must be positive")
	}
	if n.NotificationType == "" || n.Message == "" {
		return fmt.Errorf("notification type and message are required")
	}
	return nil
}

// stringPtr and int64Ptr build the optional related-entity fields.
func stringPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
