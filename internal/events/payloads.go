// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package events

// Payload is the body of an event. Each event type has its own struct;
// Raw carries anything without one.
type Payload interface {
	EventType() Type
}

// Attendance actions.
const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

// LeaveRequested is emitted after an employee files a leave request.
type LeaveRequested struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	RequestID int64  `json:"request_id" validate:"required,gt=0"`
	LeaveType string `json:"leave_type" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	DaysCount int    `json:"days_count" validate:"gte=0"`
}

// EventType implements Payload.
func (LeaveRequested) EventType() Type { return TypeLeaveRequested }

// LeaveReview is the shared body of approval and rejection events.
// AdminComments is nil when the reviewer left none.
type LeaveReview struct {
	UserID        int64   `json:"user_id" validate:"required,gt=0"`
	RequestID     int64   `json:"request_id" validate:"required,gt=0"`
	LeaveType     string  `json:"leave_type" validate:"required"`
	StartDate     string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	DaysCount     int     `json:"days_count,omitempty" validate:"gte=0"`
	ReviewedBy    int64   `json:"reviewed_by" validate:"gte=0"`
	AdminComments *string `json:"admin_comments"`
}

// Comments returns the reviewer comments or "".
func (r *LeaveReview) Comments() string {
	if r.AdminComments == nil {
		return ""
	}
	return *r.AdminComments
}

// LeaveApproved is emitted after an admin approves a leave request.
type LeaveApproved struct {
	LeaveReview
}

// EventType implements Payload.
func (LeaveApproved) EventType() Type { return TypeLeaveApproved }

// LeaveRejected is emitted after an admin rejects a leave request.
type LeaveRejected struct {
	LeaveReview
}

// EventType implements Payload.
func (LeaveRejected) EventType() Type { return TypeLeaveRejected }

// AttendanceUpdated is emitted on every check-in and check-out.
type AttendanceUpdated struct {
	UserID       int64  `json:"user_id" validate:"required,gt=0"`
	AttendanceID int64  `json:"attendance_id" validate:"required,gt=0"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Action       string `json:"action" validate:"required,oneof=check_in check_out"`
	Status       string `json:"status"`
}

// EventType implements Payload.
func (AttendanceUpdated) EventType() Type { return TypeAttendanceUpdated }

// Raw is an untyped payload for event types without a dedicated struct
// (payslip_generated, salary_updated, or anything unknown).
type Raw struct {
	Type   Type
	Fields map[string]interface{}
}

// EventType implements Payload.
func (r Raw) EventType() Type { return r.Type }
