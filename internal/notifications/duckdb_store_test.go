// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

//go:build integration

package notifications

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/dayflow/internal/config"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory DuckDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newDuckDBStoreForTest(t *testing.T) Store {
	t.Helper()
	s := NewDuckDBStore(setupTestDB(t))
	if err := s.CreateTable(context.Background()); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	return s
}

func TestDuckDBStore(t *testing.T) {
	runStoreContract(t, newDuckDBStoreForTest)
}

func TestDuckDBStore_CreateTableIdempotent(t *testing.T) {
	db := setupTestDB(t)
	s := NewDuckDBStore(db)
	for i := 0; i < 2; i++ {
		if err := s.CreateTable(context.Background()); err != nil {
			t.Fatalf("CreateTable #%d failed: %v", i+1, err)
		}
	}

	var tableName string
	err := db.QueryRow("SELECT table_name FROM information_schema.tables WHERE table_name = 'notifications'").Scan(&tableName)
	if err != nil {
		t.Fatalf("Table notifications does not exist: %v", err)
	}
}

func TestDuckDBStore_NullRelatedEntity(t *testing.T) {
	s := newDuckDBStoreForTest(t)
	n := &Notification{UserID: 1, NotificationType: "system", Message: "hello"}
	if err := s.Create(context.Background(), n); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(context.Background(), n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.RelatedEntityType != nil || got.RelatedEntityID != nil {
		t.Errorf("related entity = %v/%v, want nil", got.RelatedEntityType, got.RelatedEntityID)
	}
}

func TestNewStore_DuckDB(t *testing.T) {
	db := setupTestDB(t)
	store, closeFn, err := NewStore(context.Background(), &config.NotificationsConfig{Store: config.StoreDuckDB}, db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	defer closeFn()
	if _, ok := store.(*DuckDBStore); !ok {
		t.Errorf("store type = %T, want *DuckDBStore", store)
	}
}
