// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package relay

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/dayflow/internal/events"
	"github.com/tomtom215/dayflow/internal/logging"
)

// Sink accepts an already decoded event.
type Sink interface {
	Submit(ctx context.Context, t events.Type, p events.Payload) error
}

// BusSink dispatches synchronously on the in-process bus.
type BusSink struct {
	Bus Dispatcher
}

// Submit implements Sink.
func (s BusSink) Submit(ctx context.Context, t events.Type, p events.Payload) error {
	s.Bus.Dispatch(ctx, t, p)
	return nil
}

// Publisher writes events to a message topic for an Ingestor to pick up.
type Publisher struct {
	pub   message.Publisher
	topic string
}

// NewPublisher creates a publisher for topic.
func NewPublisher(pub message.Publisher, topic string) *Publisher {
	return &Publisher{pub: pub, topic: topic}
}

// Submit implements Sink. The payload is marshalled as JSON and the event
// type and correlation id travel as metadata.
func (p *Publisher) Submit(ctx context.Context, t events.Type, payload events.Payload) error {
	body, err := marshalPayload(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(MetadataEventType, string(t))
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetadataCorrelationID, id)
	}
	msg.SetContext(ctx)

	if err := p.pub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", t, p.topic, err)
	}
	return nil
}

// Raw payloads are flattened back to their field map.
func marshalPayload(p events.Payload) ([]byte, error) {
	var v interface{} = p
	if raw, ok := p.(events.Raw); ok {
		v = raw.Fields
	}
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return body, nil
}
