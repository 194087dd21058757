// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

//go:build wal

package notifications

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/dayflow/internal/logging"
)

// Key layout:
//
//	n:<id>                   notification JSON
//	u:<user_id>:<^id>        per-user index, newest first
//	seq:notifications        id sequence
const (
	prefixNotification = "n:"
	prefixUserIndex    = "u:"
	sequenceKey        = "seq:notifications"
)

// BadgerStore implements Store on an embedded BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
	now func() time.Time
}

// OpenBadgerStore opens (or creates) a store at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	return openBadger(opts)
}

// OpenBadgerStoreInMemory opens a store that never touches disk.
func OpenBadgerStoreInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts)
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	seq, err := db.GetSequence([]byte(sequenceKey), 100)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open notification sequence: %w", err)
	}

	logging.Info().Str("path", opts.Dir).Bool("in_memory", opts.InMemory).Msg("badger notification store opened")
	return &BadgerStore{db: db, seq: seq, now: time.Now}, nil
}

func notificationKey(id int64) []byte {
	key := make([]byte, len(prefixNotification)+8)
	copy(key, prefixNotification)
	binary.BigEndian.PutUint64(key[len(prefixNotification):], uint64(id))
	return key
}

func userPrefix(userID int64) []byte {
	key := make([]byte, len(prefixUserIndex)+9)
	copy(key, prefixUserIndex)
	binary.BigEndian.PutUint64(key[len(prefixUserIndex):], uint64(userID))
	key[len(key)-1] = ':'
	return key
}

// userIndexKey sorts newest first by storing the inverted id.
func userIndexKey(userID, id int64) []byte {
	prefix := userPrefix(userID)
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], uint64(math.MaxInt64-id))
	return key
}

func idFromIndexKey(key []byte) int64 {
	inv := binary.BigEndian.Uint64(key[len(key)-8:])
	return math.MaxInt64 - int64(inv)
}

// Create stores n under a new sequence id.
func (s *BadgerStore) Create(_ context.Context, n *Notification) error {
	if err := validateNew(n); err != nil {
		return err
	}
	next, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("allocate notification id: %w", err)
	}
	n.ID = int64(next) + 1
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}

	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(notificationKey(n.ID), data); err != nil {
			return err
		}
		return txn.Set(userIndexKey(n.UserID, n.ID), nil)
	})
}

// scanUser walks the user's notifications newest first.
func (s *BadgerStore) scanUser(txn *badger.Txn, userID int64, fn func(n *Notification) error) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := userPrefix(userID)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		n, err := s.getTxn(txn, idFromIndexKey(it.Item().Key()))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

// List returns one page of the user's notifications, newest first.
func (s *BadgerStore) List(_ context.Context, q ListQuery) (*Page, error) {
	q, err := q.normalize()
	if err != nil {
		return nil, err
	}

	page := &Page{Notifications: []Notification{}, Page: q.Page, PageSize: q.PageSize}
	start, end := q.offset(), q.offset()+q.PageSize

	err = s.db.View(func(txn *badger.Txn) error {
		return s.scanUser(txn, q.UserID, func(n *Notification) error {
			if !n.IsRead {
				page.UnreadCount++
			}
			if q.UnreadOnly && n.IsRead {
				return nil
			}
			if page.Total >= start && page.Total < end {
				page.Notifications = append(page.Notifications, *n)
			}
			page.Total++
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return page, nil
}

func (s *BadgerStore) getTxn(txn *badger.Txn, id int64) (*Notification, error) {
	item, err := txn.Get(notificationKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var n Notification
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &n)
	}); err != nil {
		return nil, fmt.Errorf("decode notification %d: %w", id, err)
	}
	return &n, nil
}

// Get returns the notification with id.
func (s *BadgerStore) Get(_ context.Context, id int64) (*Notification, error) {
	var n *Notification
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		n, err = s.getTxn(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// MarkRead flags the notification as read if userID owns it.
func (s *BadgerStore) MarkRead(_ context.Context, id, userID int64) (*Notification, error) {
	var n *Notification
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		n, err = s.getTxn(txn, id)
		if err != nil {
			return err
		}
		if n.UserID != userID {
			return ErrForbidden
		}
		if n.IsRead {
			return nil
		}
		n.IsRead = true
		data, err := json.Marshal(n)
		if err != nil {
			return err
		}
		return txn.Set(notificationKey(id), data)
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *BadgerStore) UnreadCount(_ context.Context, userID int64) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		return s.scanUser(txn, userID, func(n *Notification) error {
			if !n.IsRead {
				count++
			}
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// Ping fails once the database is closed.
func (s *BadgerStore) Ping(context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger store is closed")
	}
	return nil
}

// Close releases the sequence and closes the database.
func (s *BadgerStore) Close() error {
	if err := s.seq.Release(); err != nil {
		logging.Warn().Err(err).Msg("failed to release notification sequence")
	}
	return s.db.Close()
}
