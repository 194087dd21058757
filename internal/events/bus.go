// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package events

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/tomtom215/dayflow/internal/logging"
	"github.com/tomtom215/dayflow/internal/metrics"
)

// Handler reacts to one event. A returned error (or a panic) is logged by
// the bus and never reaches the caller of Dispatch.
type Handler func(ctx context.Context, p Payload) error

// Typed adapts a handler for one concrete payload type. Any other payload
// yields ErrPayloadMismatch.
//
//	bus.Register(events.TypeLeaveApproved, events.Typed(h.onLeaveApproved))
func Typed[P Payload](fn func(ctx context.Context, p P) error) Handler {
	return func(ctx context.Context, p Payload) error {
		typed, ok := p.(P)
		if !ok {
			return fmt.Errorf("%w: got %T", ErrPayloadMismatch, p)
		}
		return fn(ctx, typed)
	}
}

// Bus is a synchronous in-process publish/subscribe registry.
//
// Handlers for a type run in registration order on the goroutine that calls
// Dispatch. Registration is append-only; the same handler registered twice
// runs twice.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]Handler)}
}

// Register appends h to the handlers for t. Unknown types are accepted but
// logged, since they usually mean a typo.
func (b *Bus) Register(t Type, h Handler) {
	if h == nil {
		return
	}
	if !t.Known() {
		logging.Warn().Str("event_type", string(t)).Msg("registering handler for unknown event type")
	}

	b.mu.Lock()
	b.handlers[t] = append(b.handlers[t], h)
	count := len(b.handlers[t])
	b.mu.Unlock()

	logging.Debug().Str("event_type", string(t)).Int("handlers", count).Msg("event handler registered")
}

// Dispatch invokes every handler registered for t with p.
//
// A failing handler is logged and skipped; the remaining handlers still run.
// Dispatch on a type with no handlers does nothing.
func (b *Bus) Dispatch(ctx context.Context, t Type, p Payload) {
	if !t.Known() {
		logging.Warn().Str("event_type", string(t)).Msg("dispatching unknown event type")
	}

	handlers := b.Handlers(t)
	if len(handlers) == 0 {
		logging.Debug().Str("event_type", string(t)).Msg("no handlers registered for event")
		return
	}

	if logging.CorrelationIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewCorrelationID(ctx)
	}
	if p != nil && p.EventType() != t {
		logging.Ctx(ctx).Warn().
			Str("event_type", string(t)).
			Str("payload_type", string(p.EventType())).
			Msg("payload type differs from dispatched event type")
	}

	metrics.EventsDispatched.WithLabelValues(string(t)).Inc()

	for i, h := range handlers {
		start := time.Now()
		panicked, err := invoke(ctx, h, p)
		reason := ""
		if err != nil {
			reason = "error"
			if panicked {
				reason = "panic"
			}
			logging.Ctx(ctx).Error().
				Err(err).
				Str("event_type", string(t)).
				Int("handler_index", i).
				Bool("panic", panicked).
				Msg("event handler failed")
		}
		metrics.RecordHandler(string(t), time.Since(start), reason)
	}
}

// invoke runs h and converts a panic into an error carrying the stack.
func invoke(ctx context.Context, h Handler, p Payload) (panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v\n%s", r, debug.Stack())
			panicked = true
		}
	}()
	return false, h(ctx, p)
}

// Handlers returns a copy of the handlers registered for t.
func (b *Bus) Handlers(t Type) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	hs := b.handlers[t]
	if len(hs) == 0 {
		return nil
	}
	out := make([]Handler, len(hs))
	copy(out, hs)
	return out
}

// Clear removes every registration. Intended for test isolation only.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.handlers = make(map[Type][]Handler)
	b.mu.Unlock()
}
