// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/dayflow/internal/logging"
	"github.com/tomtom215/dayflow/internal/metrics"
)

// BreakerDirectory fails fast while the wrapped directory is unhealthy.
//
// The breaker opens after threshold consecutive failures and stays open for
// timeout before letting a single probe through. ErrUserNotFound and caller
// cancellation do not count as failures.
type BreakerDirectory struct {
	next Directory
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// NewBreakerDirectory wraps next.
func NewBreakerDirectory(next Directory, name string, threshold uint32, timeout time.Duration) *BreakerDirectory {
	if threshold == 0 {
		threshold = 5
	}
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrUserNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerDirectory{next: next, cb: cb, name: name}
}

// AdminIDs implements Directory.
func (d *BreakerDirectory) AdminIDs(ctx context.Context) ([]int64, error) {
	res, err := d.cb.Execute(func() (interface{}, error) {
		return d.next.AdminIDs(ctx)
	})
	if err != nil {
		return nil, err
	}
	ids, ok := res.([]int64)
	if !ok && res != nil {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return ids, nil
}

// DisplayName implements Directory.
func (d *BreakerDirectory) DisplayName(ctx context.Context, userID int64) (string, error) {
	res, err := d.cb.Execute(func() (interface{}, error) {
		return d.next.DisplayName(ctx, userID)
	})
	if err != nil {
		return "", err
	}
	name, ok := res.(string)
	if !ok {
		return "", fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return name, nil
}

// State returns the breaker state ("closed", "half-open" or "open").
func (d *BreakerDirectory) State() string {
	return d.cb.State().String()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
