// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package relay moves HR events between services over a message topic.

The CRUD services that own leave requests and attendance run as separate
processes. They publish one message per event; the Ingestor in this
process consumes the topic and dispatches each event on the local bus,
where the notification handlers pick it up.

# Message Format

	metadata: event_type=leave_approved, correlation_id=<optional>
	payload:  {"user_id":123,"request_id":456,...}

A message without event_type metadata is decoded as an envelope:

	{"type":"leave_approved","payload":{...}}

Malformed messages are acked and counted in dayflow_relay_messages_total
with result="malformed".

# Transports

  - channel: watermill gochannel, in-process. Used by tests and by
    single-process deployments that want POST /api/v2/events to return
    before handlers run.
  - nats: watermill-nats with optional JetStream durable consumers. Needs
    the nats build tag.
*/
package relay
