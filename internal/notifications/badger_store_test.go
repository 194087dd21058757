// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

//go:build wal

package notifications

import (
	"context"
	"testing"
)

func newBadgerStoreForTest(t *testing.T) Store {
	t.Helper()
	s, err := OpenBadgerStoreInMemory()
	if err != nil {
		t.Fatalf("OpenBadgerStoreInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBadgerStore(t *testing.T) {
	runStoreContract(t, newBadgerStoreForTest)
}

func TestBadgerStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenBadgerStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	n := &Notification{UserID: 9, NotificationType: "leave_approved", Message: "approved"}
	if err := s.Create(context.Background(), n); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenBadgerStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := reopened.Get(context.Background(), n.ID)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Message != "approved" {
		t.Errorf("Message = %q", got.Message)
	}

	// new ids must not collide with existing ones
	next := &Notification{UserID: 9, NotificationType: "leave_approved", Message: "second"}
	if err := reopened.Create(context.Background(), next); err != nil {
		t.Fatal(err)
	}
	if next.ID == n.ID {
		t.Errorf("id %d reused after reopen", next.ID)
	}
}

func TestBadgerStore_PingAfterClose(t *testing.T) {
	s, err := OpenBadgerStoreInMemory()
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Close()
	if err := s.Ping(context.Background()); err == nil {
		t.Error("Ping() should fail after Close")
	}
}

func TestIndexKeyRoundTrip(t *testing.T) {
	for _, id := range []int64{1, 42, 1 << 40} {
		if got := idFromIndexKey(userIndexKey(3, id)); got != id {
			t.Errorf("idFromIndexKey(userIndexKey(3, %d)) = %d", id, got)
		}
	}
}
