// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package notifications

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements Store in memory.
// Suitable for development and testing. Data is lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	items  []Notification
	nextID int64
	now    func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Create assigns an id and creation time and stores n.
func (s *MemoryStore) Create(_ context.Context, n *Notification) error {
	if err := validateNew(n); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	n.ID = s.nextID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}
	s.items = append(s.items, *n)
	return nil
}

// List returns one page of the user's notifications, newest first.
func (s *MemoryStore) List(_ context.Context, q ListQuery) (*Page, error) {
	q, err := q.normalize()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	var matched []Notification
	unread := 0
	for i := range s.items {
		n := s.items[i]
		if n.UserID != q.UserID {
			continue
		}
		if !n.IsRead {
			unread++
		}
		if q.UnreadOnly && n.IsRead {
			continue
		}
		matched = append(matched, n)
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	page := &Page{
		Notifications: []Notification{},
		Total:         len(matched),
		UnreadCount:   unread,
		Page:          q.Page,
		PageSize:      q.PageSize,
	}
	start := q.offset()
	if start < len(matched) {
		end := start + q.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		page.Notifications = matched[start:end]
	}
	return page, nil
}

// Get returns a copy of the notification with id.
func (s *MemoryStore) Get(_ context.Context, id int64) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			n := s.items[i]
			return &n, nil
		}
	}
	return nil, ErrNotFound
}

// MarkRead flags the notification as read if userID owns it.
func (s *MemoryStore) MarkRead(_ context.Context, id, userID int64) (*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if s.items[i].UserID != userID {
			return nil, ErrForbidden
		}
		s.items[i].IsRead = true
		n := s.items[i]
		return &n, nil
	}
	return nil, ErrNotFound
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *MemoryStore) UnreadCount(_ context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.items {
		if s.items[i].UserID == userID && !s.items[i].IsRead {
			count++
		}
	}
	return count, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Len returns the number of stored notifications across all users.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// All returns a copy of every stored notification in insertion order.
func (s *MemoryStore) All() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}
