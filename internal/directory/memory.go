// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package directory

import (
	"context"
	"sort"
	"sync"
)

// MemoryDirectory is a fixed directory for development and tests.
type MemoryDirectory struct {
	mu     sync.RWMutex
	admins []int64
	names  map[int64]string
}

// NewMemoryDirectory creates a directory with the given admins and names.
// Unknown users resolve to ErrUserNotFound.
func NewMemoryDirectory(adminIDs []int64, names map[int64]string) *MemoryDirectory {
	admins := make([]int64, len(adminIDs))
	copy(admins, adminIDs)
	sort.Slice(admins, func(i, j int) bool { return admins[i] < admins[j] })

	n := make(map[int64]string, len(names))
	for id, name := range names {
		n[id] = name
	}
	return &MemoryDirectory{admins: admins, names: n}
}

// AdminIDs implements Directory.
func (d *MemoryDirectory) AdminIDs(context.Context) ([]int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]int64, len(d.admins))
	copy(out, d.admins)
	return out, nil
}

// DisplayName implements Directory.
func (d *MemoryDirectory) DisplayName(_ context.Context, userID int64) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.names[userID]
	if !ok {
		return "", ErrUserNotFound
	}
	return name, nil
}

// SetName adds or replaces a display name.
func (d *MemoryDirectory) SetName(userID int64, name string) {
	d.mu.Lock()
	d.names[userID] = name
	d.mu.Unlock()
}
