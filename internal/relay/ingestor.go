// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/dayflow/internal/events"
	"github.com/tomtom215/dayflow/internal/logging"
	"github.com/tomtom215/dayflow/internal/metrics"
)

// Message metadata keys.
const (
	MetadataEventType     = "event_type"
	MetadataCorrelationID = "correlation_id"
)

// Dispatcher is the publishing side of the event bus.
type Dispatcher interface {
	Dispatch(ctx context.Context, t events.Type, p events.Payload)
}

// Ingestor feeds events from a message topic into the bus.
//
// The event type is read from the event_type metadata key; messages without
// it are decoded as a {"type","payload"} envelope instead. Every message is
// acked, malformed ones included, so a poison message cannot block the
// topic. Ingestor implements suture.Service.
type Ingestor struct {
	sub    message.Subscriber
	topic  string
	bus    Dispatcher
	logger zerolog.Logger

	readyOnce sync.Once
	ready     chan struct{}
}

// NewIngestor creates an ingestor for topic.
func NewIngestor(sub message.Subscriber, topic string, bus Dispatcher) *Ingestor {
	return &Ingestor{
		sub:    sub,
		topic:  topic,
		bus:    bus,
		logger: logging.WithComponent("relay"),
		ready:  make(chan struct{}),
	}
}

// Ready is closed once the first subscription is in place.
func (i *Ingestor) Ready() <-chan struct{} {
	return i.ready
}

// Serve consumes the topic until ctx is canceled.
func (i *Ingestor) Serve(ctx context.Context) error {
	messages, err := i.sub.Subscribe(ctx, i.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", i.topic, err)
	}
	i.readyOnce.Do(func() { close(i.ready) })
	i.logger.Info().Str("topic", i.topic).Msg("event relay subscribed")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return errors.New("relay subscription closed")
			}
			i.handle(ctx, msg)
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (i *Ingestor) String() string {
	return "relay-ingestor(" + i.topic + ")"
}

func (i *Ingestor) handle(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	t, p, err := decodeMessage(msg)
	if err != nil {
		metrics.RelayMessages.WithLabelValues("malformed").Inc()
		i.logger.Warn().
			Err(err).
			Str("message_uuid", msg.UUID).
			Str("event_type", string(t)).
			Msg("dropping malformed relay message")
		return
	}

	correlationID := msg.Metadata.Get(MetadataCorrelationID)
	if correlationID == "" {
		correlationID = msg.UUID
	}
	msgCtx := logging.ContextWithCorrelationID(ctx, correlationID)

	i.bus.Dispatch(msgCtx, t, p)
	metrics.RelayMessages.WithLabelValues("dispatched").Inc()
}

func decodeMessage(msg *message.Message) (events.Type, events.Payload, error) {
	if t := events.Type(msg.Metadata.Get(MetadataEventType)); t != "" {
		p, err := events.Decode(t, msg.Payload)
		return t, p, err
	}
	return events.DecodeEnvelope(msg.Payload)
}
