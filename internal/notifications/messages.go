// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package notifications

import (
	"fmt"

	"github.com/tomtom215/dayflow/internal/events"
)

func leaveApprovedMessage(p events.LeaveApproved) string {
	return fmt.Sprintf("Your %s leave request from %s to %s has been approved.",
		p.LeaveType, p.StartDate, p.EndDate)
}

func leaveRejectedMessage(p events.LeaveRejected) string {
	msg := fmt.Sprintf("Your %s leave request from %s to %s has been rejected.",
		p.LeaveType, p.StartDate, p.EndDate)
	if c := p.Comments(); c != "" {
		msg += " Reason: " + c
	}
	return msg
}

func leaveRequestedMessage(p events.LeaveRequested, requester string) string {
	return fmt.Sprintf("%s has requested %s leave from %s to %s (%d days).",
		requester, p.LeaveType, p.StartDate, p.EndDate, p.DaysCount)
}

func attendanceMessage(p events.AttendanceUpdated, employee string) string {
	action := "checked out"
	if p.Action == events.ActionCheckIn {
		action = "checked in"
	}
	return fmt.Sprintf("%s has %s on %s", employee, action, p.Date)
}

// fallbackName is used when the directory cannot resolve a user.
func fallbackName(userID int64) string {
	return fmt.Sprintf("User %d", userID)
}
