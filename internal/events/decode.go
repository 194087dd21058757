// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package events

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dayflow/internal/validation"
)

// Envelope is the wire form used by the HTTP and relay entry points.
type Envelope struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Decode parses and validates a JSON payload for t.
//
// Types with a dedicated struct are strictly decoded and validated. Other
// types, known or not, decode into Raw so they can still pass through the bus.
func Decode(t Type, data []byte) (Payload, error) {
	if t == "" {
		return nil, ErrUnknownEventType
	}

	var p Payload
	switch t {
	case TypeLeaveRequested:
		var v LeaveRequested
		if err := decodeStrict(data, &v); err != nil {
			return nil, err
		}
		p = v
	case TypeLeaveApproved:
		var v LeaveApproved
		if err := decodeStrict(data, &v); err != nil {
			return nil, err
		}
		p = v
	case TypeLeaveRejected:
		var v LeaveRejected
		if err := decodeStrict(data, &v); err != nil {
			return nil, err
		}
		p = v
	case TypeAttendanceUpdated:
		var v AttendanceUpdated
		if err := decodeStrict(data, &v); err != nil {
			return nil, err
		}
		p = v
	default:
		fields := map[string]interface{}{}
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &fields); err != nil {
				return nil, fmt.Errorf("failed to decode %s payload: %w", t, err)
			}
		}
		return Raw{Type: t, Fields: fields}, nil
	}

	if verr := validation.ValidateStruct(p); verr != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", t, verr)
	}
	return p, nil
}

// DecodeEnvelope parses {"type": ..., "payload": {...}}.
func DecodeEnvelope(data []byte) (Type, Payload, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", nil, fmt.Errorf("failed to decode event envelope: %w", err)
	}
	p, err := Decode(env.Type, env.Payload)
	if err != nil {
		return env.Type, nil, err
	}
	return env.Type, p, nil
}

func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}
