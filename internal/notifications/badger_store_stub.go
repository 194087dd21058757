// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

//go:build !wal

package notifications

import (
	"context"
	"errors"
)

// errBadgerDisabled is returned when the binary was built without the wal tag.
var errBadgerDisabled = errors.New("badger notification store not enabled (build with -tags wal)")

// BadgerStore is a stub for builds without the wal tag.
type BadgerStore struct{}

// OpenBadgerStore always fails in builds without the wal tag.
func OpenBadgerStore(string) (*BadgerStore, error) {
	return nil, errBadgerDisabled
}

// OpenBadgerStoreInMemory always fails in builds without the wal tag.
func OpenBadgerStoreInMemory() (*BadgerStore, error) {
	return nil, errBadgerDisabled
}

func (s *BadgerStore) Create(context.Context, *Notification) error { return errBadgerDisabled }

func (s *BadgerStore) List(context.Context, ListQuery) (*Page, error) { return nil, errBadgerDisabled }

func (s *BadgerStore) Get(context.Context, int64) (*Notification, error) {
	return nil, errBadgerDisabled
}

func (s *BadgerStore) MarkRead(context.Context, int64, int64) (*Notification, error) {
	return nil, errBadgerDisabled
}

func (s *BadgerStore) UnreadCount(context.Context, int64) (int, error) { return 0, errBadgerDisabled }

func (s *BadgerStore) Ping(context.Context) error { return errBadgerDisabled }

// Close is a no-op stub.
func (s *BadgerStore) Close() error { return nil }
