// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package relay

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/dayflow/internal/config"
	"github.com/tomtom215/dayflow/internal/logging"
)

// Transport is a connected publisher/subscriber pair.
type Transport struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
	close      func() error
}

// Close releases both sides.
func (t *Transport) Close() error {
	if t.close == nil {
		return nil
	}
	return t.close()
}

// NewTransport opens the transport selected by cfg.Transport.
func NewTransport(cfg *config.RelayConfig) (*Transport, error) {
	logger := watermill.NewSlogLogger(logging.NewSlogLogger())

	switch cfg.Transport {
	case config.RelayChannel:
		return newChannelTransport(logger), nil
	case config.RelayNATS:
		return newNATSTransport(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown relay transport %q", cfg.Transport)
	}
}

// newChannelTransport is an in-process pub/sub. Messages published with no
// subscriber are dropped. Each publish is delivered on its own goroutine, so
// consumers may see messages out of publish order.
func newChannelTransport(logger watermill.LoggerAdapter) *Transport {
	ps := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, logger)
	return &Transport{Publisher: ps, Subscriber: ps, close: ps.Close}
}
