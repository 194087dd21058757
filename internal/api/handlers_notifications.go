// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/dayflow/internal/auth"
	"github.com/tomtom215/dayflow/internal/logging"
	"github.com/tomtom215/dayflow/internal/metrics"
	"github.com/tomtom215/dayflow/internal/notifications"
	"github.com/tomtom215/dayflow/internal/validation"
)

// MarkReadResponse is the body of a successful mark-read call.
type MarkReadResponse struct {
	Notification *notifications.Notification `json:"notification"`
	Message      string                      `json:"message"`
}

// ListNotifications returns the caller's notifications, newest first.
//
// Query: page (default 1), page_size (default from config), unread_only.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.ClaimsFromContext(r.Context())

	req, msg := h.parseListRequest(r)
	if msg != "" {
		rw.BadRequest(msg)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr.Error(), verr.Fields())
		return
	}
	if max := h.maxPageSize(); req.PageSize > max {
		rw.BadRequest("page_size must be at most " + strconv.Itoa(max))
		return
	}

	page, err := h.store.List(r.Context(), notifications.ListQuery{
		UserID:     claims.UserID,
		Page:       req.Page,
		PageSize:   req.PageSize,
		UnreadOnly: req.UnreadOnly,
	})
	if errors.Is(err, notifications.ErrInvalidQuery) {
		rw.BadRequest(err.Error())
		return
	}
	if err != nil {
		metrics.NotificationStoreErrors.WithLabelValues("list").Inc()
		rw.DatabaseError(err)
		return
	}

	rw.Success(page)
}

// MarkNotificationRead marks one of the caller's notifications as read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.ClaimsFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		rw.BadRequest("Invalid notification id")
		return
	}

	n, err := h.store.MarkRead(r.Context(), id, claims.UserID)
	switch {
	case errors.Is(err, notifications.ErrNotFound):
		rw.NotFound("Notification not found")
		return
	case errors.Is(err, notifications.ErrForbidden):
		logging.Ctx(r.Context()).Warn().
			Int64("notification_id", id).
			Msg("attempt to mark another user's notification as read")
		rw.Forbidden("Not authorized to modify this notification")
		return
	case err != nil:
		metrics.NotificationStoreErrors.WithLabelValues("mark_read").Inc()
		rw.DatabaseError(err)
		return
	}

	rw.Success(MarkReadResponse{Notification: n, Message: "Notification marked as read"})
}

// parseListRequest reads the query string. A non-empty message means the
// request is malformed.
func (h *Handler) parseListRequest(r *http.Request) (NotificationListRequest, string) {
	q := r.URL.Query()
	req := NotificationListRequest{Page: 1, PageSize: h.defaultPageSize()}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, "page must be an integer"
		}
		req.Page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, "page_size must be an integer"
		}
		req.PageSize = n
	}
	if v := q.Get("unread_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, "unread_only must be a boolean"
		}
		req.UnreadOnly = b
	}
	return req, ""
}

func (h *Handler) defaultPageSize() int {
	if h.cfg != nil && h.cfg.Notifications.DefaultPageSize > 0 {
		return h.cfg.Notifications.DefaultPageSize
	}
	return notifications.DefaultPageSize
}

func (h *Handler) maxPageSize() int {
	if h.cfg != nil && h.cfg.Notifications.MaxPageSize > 0 {
		return h.cfg.Notifications.MaxPageSize
	}
	return notifications.MaxPageSize
}
