// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/dayflow/internal/events"
	"github.com/tomtom215/dayflow/internal/logging"
	"github.com/tomtom215/dayflow/internal/metrics"
)

// Pusher delivers a live update. websocket.Dispatcher satisfies it.
type Pusher interface {
	PushUpdate(ctx context.Context, userID int64, updateType string, payload interface{}) bool
}

// Directory resolves recipients and display names. directory.Directory
// implementations satisfy it.
type Directory interface {
	AdminIDs(ctx context.Context) ([]int64, error)
	DisplayName(ctx context.Context, userID int64) (string, error)
}

// Registrar is the subscription side of the event bus.
type Registrar interface {
	Register(t events.Type, h events.Handler)
}

// Push payloads, one per event type.
type (
	LeaveApprovedUpdate struct {
		RequestID int64  `json:"request_id"`
		Message   string `json:"message"`
		LeaveType string `json:"leave_type"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}

	LeaveRejectedUpdate struct {
		RequestID     int64   `json:"request_id"`
		Message       string  `json:"message"`
		LeaveType     string  `json:"leave_type"`
		StartDate     string  `json:"start_date"`
		EndDate       string  `json:"end_date"`
		AdminComments *string `json:"admin_comments"`
	}

	LeaveRequestedUpdate struct {
		RequestID     int64  `json:"request_id"`
		Message       string `json:"message"`
		RequesterID   int64  `json:"requester_id"`
		RequesterName string `json:"requester_name"`
		LeaveType     string `json:"leave_type"`
		StartDate     string `json:"start_date"`
		EndDate       string `json:"end_date"`
		DaysCount     int    `json:"days_count"`
	}

	AttendanceUpdate struct {
		AttendanceID int64  `json:"attendance_id"`
		EmployeeID   int64  `json:"employee_id"`
		EmployeeName string `json:"employee_name"`
		Date         string `json:"date"`
		Action       string `json:"action"`
		Status       string `json:"status"`
		Message      string `json:"message"`
	}
)

// Handlers turns leave and attendance events into live pushes and
// persisted notifications.
//
// Every recipient is tried on its own: a failed push or a failed insert is
// logged and the next recipient is still served. Leave notifications are
// persisted whether or not the push reached anyone; attendance updates are
// push-only.
type Handlers struct {
	pusher    Pusher
	store     Store
	directory Directory
}

// NewHandlers creates the domain handlers.
func NewHandlers(pusher Pusher, store Store, directory Directory) *Handlers {
	return &Handlers{pusher: pusher, store: store, directory: directory}
}

// Register subscribes the handlers to bus.
func (h *Handlers) Register(bus Registrar) {
	bus.Register(events.TypeLeaveApproved, events.Typed(h.OnLeaveApproved))
	bus.Register(events.TypeLeaveRejected, events.Typed(h.OnLeaveRejected))
	bus.Register(events.TypeLeaveRequested, events.Typed(h.OnLeaveRequested))
	bus.Register(events.TypeAttendanceUpdated, events.Typed(h.OnAttendanceUpdated))
}

// OnLeaveApproved notifies the requester.
func (h *Handlers) OnLeaveApproved(ctx context.Context, p events.LeaveApproved) error {
	msg := leaveApprovedMessage(p)
	update := LeaveApprovedUpdate{
		RequestID: p.RequestID,
		Message:   msg,
		LeaveType: p.LeaveType,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
	}
	return h.deliver(ctx, p.UserID, events.TypeLeaveApproved, update, leaveNotification(p.UserID, events.TypeLeaveApproved, msg, p.RequestID))
}

// OnLeaveRejected notifies the requester, including reviewer comments.
func (h *Handlers) OnLeaveRejected(ctx context.Context, p events.LeaveRejected) error {
	msg := leaveRejectedMessage(p)
	update := LeaveRejectedUpdate{
		RequestID:     p.RequestID,
		Message:       msg,
		LeaveType:     p.LeaveType,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		AdminComments: p.AdminComments,
	}
	return h.deliver(ctx, p.UserID, events.TypeLeaveRejected, update, leaveNotification(p.UserID, events.TypeLeaveRejected, msg, p.RequestID))
}

// OnLeaveRequested notifies every admin.
func (h *Handlers) OnLeaveRequested(ctx context.Context, p events.LeaveRequested) error {
	admins, err := h.directory.AdminIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin users: %w", err)
	}

	name := h.displayName(ctx, p.UserID)
	msg := leaveRequestedMessage(p, name)
	update := LeaveRequestedUpdate{
		RequestID:     p.RequestID,
		Message:       msg,
		RequesterID:   p.UserID,
		RequesterName: name,
		LeaveType:     p.LeaveType,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		DaysCount:     p.DaysCount,
	}

	var errs []error
	for _, adminID := range admins {
		n := leaveNotification(adminID, events.TypeLeaveRequested, msg, p.RequestID)
		if err := h.deliver(ctx, adminID, events.TypeLeaveRequested, update, n); err != nil {
			errs = append(errs, err)
		}
	}

	logging.Ctx(ctx).Info().
		Int64("request_id", p.RequestID).
		Int("admins", len(admins)).
		Msg("leave request fanned out to admins")
	return errors.Join(errs...)
}

// OnAttendanceUpdated pushes a check-in or check-out to every admin.
func (h *Handlers) OnAttendanceUpdated(ctx context.Context, p events.AttendanceUpdated) error {
	admins, err := h.directory.AdminIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin users: %w", err)
	}

	name := h.displayName(ctx, p.UserID)
	update := AttendanceUpdate{
		AttendanceID: p.AttendanceID,
		EmployeeID:   p.UserID,
		EmployeeName: name,
		Date:         p.Date,
		Action:       p.Action,
		Status:       p.Status,
		Message:      attendanceMessage(p, name),
	}

	for _, adminID := range admins {
		_ = h.deliver(ctx, adminID, events.TypeAttendanceUpdated, update, nil)
	}
	return nil
}

// deliver pushes update to userID and then persists n when it is non-nil.
func (h *Handlers) deliver(ctx context.Context, userID int64, t events.Type, update interface{}, n *Notification) error {
	log := logging.Ctx(ctx).With().Int64("user_id", userID).Str("event_type", string(t)).Logger()

	if h.pusher.PushUpdate(ctx, userID, string(t), update) {
		log.Debug().Msg("pushed update via websocket")
	}

	if n == nil {
		return nil
	}
	if err := h.store.Create(ctx, n); err != nil {
		metrics.NotificationStoreErrors.WithLabelValues("create").Inc()
		log.Error().Err(err).Msg("failed to persist notification")
		return fmt.Errorf("persist notification for user %d: %w", userID, err)
	}
	metrics.NotificationsStored.WithLabelValues(string(t)).Inc()
	return nil
}

// displayName resolves a user's name, falling back to "User {id}".
func (h *Handlers) displayName(ctx context.Context, userID int64) string {
	name, err := h.directory.DisplayName(ctx, userID)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("user_id", userID).Msg("failed to resolve display name")
		return fallbackName(userID)
	}
	if name == "" {
		return fallbackName(userID)
	}
	return name
}

func leaveNotification(userID int64, t events.Type, msg string, requestID int64) *Notification {
	return &Notification{
		UserID:            userID,
		NotificationType:  string(t),
		Message:           msg,
		RelatedEntityType: stringPtr(RelatedLeaveRequest),
		RelatedEntityID:   int64Ptr(requestID),
	}
}
