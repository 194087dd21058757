// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

//go:build nats

package relay

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/dayflow/internal/config"
)

func natsOptions(logger watermill.LoggerAdapter) []natsgo.Option {
	return []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}
}

// newNATSTransport connects a watermill publisher and a durable queue
// subscriber to NATS. JetStream streams are auto-provisioned per topic.
func newNATSTransport(cfg *config.RelayConfig, logger watermill.LoggerAdapter) (*Transport, error) {
	natsURL := cfg.URL
	var embedded *EmbeddedServer
	if cfg.Embedded {
		storeDir := ""
		if cfg.JetStream {
			storeDir = cfg.StoreDir
		}
		srv, err := StartEmbeddedServer(cfg.URL, storeDir)
		if err != nil {
			return nil, err
		}
		embedded = srv
		natsURL = srv.ClientURL()
		logger.Info("embedded NATS server started", watermill.LogFields{"url": natsURL})
	}
	shutdownEmbedded := func() {
		if embedded != nil {
			embedded.Shutdown()
		}
	}

	jetStream := wmNats.JetStreamConfig{
		Disabled:      !cfg.JetStream,
		AutoProvision: cfg.JetStream,
		DurablePrefix: cfg.DurableName,
		SubscribeOptions: []natsgo.SubOpt{
			natsgo.DeliverNew(),
			natsgo.MaxDeliver(5),
			natsgo.AckExplicit(),
		},
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         natsURL,
		NatsOptions: natsOptions(logger),
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   jetStream,
	}, logger)
	if err != nil {
		shutdownEmbedded()
		return nil, fmt.Errorf("create nats publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              natsURL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     10 * time.Second,
		NatsOptions:      natsOptions(logger),
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        jetStream,
	}, logger)
	if err != nil {
		_ = pub.Close()
		shutdownEmbedded()
		return nil, fmt.Errorf("create nats subscriber: %w", err)
	}

	return &Transport{
		Publisher:  pub,
		Subscriber: sub,
		close: func() error {
			err := errors.Join(sub.Close(), pub.Close())
			shutdownEmbedded()
			return err
		},
	}, nil
}
