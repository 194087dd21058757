// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

/*
Package events provides the in-process event bus that decouples HR domain
operations from their side effects.

Producers (leave and attendance services, the HTTP ingest endpoint and the
relay subscriber) call Bus.Dispatch with a typed payload. Every handler
registered for the event type runs synchronously in registration order. A
handler that returns an error or panics is logged and counted; the remaining
handlers still run and the producer never sees the failure.

# Event Types

	leave_requested     LeaveRequested
	leave_approved      LeaveApproved
	leave_rejected      LeaveRejected
	attendance_updated  AttendanceUpdated
	payslip_generated   Raw (no handlers yet)
	salary_updated      Raw (no handlers yet)

# Usage

	bus := events.NewBus()
	bus.Register(events.TypeLeaveApproved, events.Typed(func(ctx context.Context, p events.LeaveApproved) error {
	    return notify(ctx, p.UserID)
	}))

	bus.Dispatch(ctx, events.TypeLeaveApproved, events.LeaveApproved{...})

Payloads arriving as JSON (HTTP or message broker) go through Decode or
DecodeEnvelope, which validate the required fields before dispatch.
*/
package events
