// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package events

import "errors"

// Type tags an event on the bus.
type Type string

// Event types produced by the HR backend.
const (
	TypeLeaveRequested    Type = "leave_requested"
	TypeLeaveApproved     Type = "leave_approved"
	TypeLeaveRejected     Type = "leave_rejected"
	TypeAttendanceUpdated Type = "attendance_updated"
	TypePayslipGenerated  Type = "payslip_generated"
	TypeSalaryUpdated     Type = "salary_updated"
)

var knownTypes = []Type{
	TypeLeaveRequested,
	TypeLeaveApproved,
	TypeLeaveRejected,
	TypeAttendanceUpdated,
	TypePayslipGenerated,
	TypeSalaryUpdated,
}

var (
	// ErrUnknownEventType is returned when a raw event carries an empty type.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrPayloadMismatch is returned by typed handlers given another payload type.
	ErrPayloadMismatch = errors.New("payload does not match event type")
)

// Known reports whether t is one of the event types the backend emits.
func (t Type) Known() bool {
	for _, k := range knownTypes {
		if k == t {
			return true
		}
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// KnownTypes returns every supported event type.
func KnownTypes() []Type {
	out := make([]Type, len(knownTypes))
	copy(out, knownTypes)
	return out
}
