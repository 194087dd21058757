// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package websocket

import (
	"sort"
	"sync"

	"github.com/tomtom215/dayflow/internal/logging"
	"github.com/tomtom215/dayflow/internal/metrics"
)

// Registry maps user ids to their live, authenticated connections.
//
// A user key exists only while it has at least one connection, so Has(id)
// doubles as "is this user online".
type Registry struct {
	mu    sync.RWMutex
	conns map[int64]map[uint64]*Conn
	total int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[int64]map[uint64]*Conn)}
}

// Add registers c under its user id. Adding the same conn twice is a no-op.
func (r *Registry) Add(c *Conn) {
	if c == nil {
		return
	}

	r.mu.Lock()
	set, ok := r.conns[c.userID]
	if !ok {
		set = make(map[uint64]*Conn)
		r.conns[c.userID] = set
	}
	if _, dup := set[c.id]; !dup {
		set[c.id] = c
		r.total++
	}
	userCount, total := len(set), r.total
	// under the lock so concurrent updates cannot publish a stale total
	metrics.WSConnections.Set(float64(total))
	r.mu.Unlock()

	logging.Info().
		Int64("user_id", c.userID).
		Uint64("conn_id", c.id).
		Int("user_connections", userCount).
		Int("total_connections", total).
		Msg("websocket connection registered")
}

// Remove unregisters c. It reports whether c was present; removing twice is
// harmless.
func (r *Registry) Remove(c *Conn) bool {
	if c == nil {
		return false
	}

	r.mu.Lock()
	set, ok := r.conns[c.userID]
	if !ok {
		r.mu.Unlock()
		return false
	}
	if _, ok := set[c.id]; !ok {
		r.mu.Unlock()
		return false
	}
	delete(set, c.id)
	if len(set) == 0 {
		delete(r.conns, c.userID)
	}
	r.total--
	total := r.total
	metrics.WSConnections.Set(float64(total))
	r.mu.Unlock()

	logging.Info().
		Int64("user_id", c.userID).
		Uint64("conn_id", c.id).
		Int("total_connections", total).
		Msg("websocket connection removed")
	return true
}

// Snapshot returns a copy of the user's connections ordered by id. Callers
// may iterate it without holding the lock.
func (r *Registry) Snapshot(userID int64) []*Conn {
	r.mu.RLock()
	set := r.conns[userID]
	out := make([]*Conn, 0, len(set))
	for _, c := range set {
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Count returns the number of live connections for userID.
func (r *Registry) Count(userID int64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID])
}

// Total returns the number of live connections across all users.
func (r *Registry) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}

// Has reports whether userID has at least one live connection.
func (r *Registry) Has(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[userID]
	return ok
}

// Users returns the connected user ids in ascending order.
func (r *Registry) Users() []int64 {
	r.mu.RLock()
	out := make([]int64, 0, len(r.conns))
	for id := range r.conns {
		out = append(out, id)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CloseAll closes every registered connection with code and empties the
// registry. It returns how many connections were closed.
func (r *Registry) CloseAll(code int, reason string) int {
	r.mu.Lock()
	all := make([]*Conn, 0, r.total)
	for _, set := range r.conns {
		for _, c := range set {
			all = append(all, c)
		}
	}
	r.conns = make(map[int64]map[uint64]*Conn)
	r.total = 0
	metrics.WSConnections.Set(0)
	r.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].id < all[j].id })
	for _, c := range all {
		if err := c.CloseWithCode(code, reason); err != nil {
			logging.Debug().Err(err).Uint64("conn_id", c.id).Msg("error closing websocket during shutdown")
		}
	}
	return len(all)
}
