// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

//go:build !nats

package relay

import (
	"errors"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/tomtom215/dayflow/internal/config"
)

// ErrNATSDisabled is returned when the binary was built without the nats tag.
var ErrNATSDisabled = errors.New("nats relay not available: rebuild with -tags nats")

func newNATSTransport(_ *config.RelayConfig, _ watermill.LoggerAdapter) (*Transport, error) {
	return nil, ErrNATSDisabled
}
