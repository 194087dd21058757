// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/tomtom215/dayflow/internal/auth"
	"github.com/tomtom215/dayflow/internal/events"
	"github.com/tomtom215/dayflow/internal/logging"
	"github.com/tomtom215/dayflow/internal/validation"
)

const maxEventBodyBytes = 1 << 20

// EventAccepted is the body of a 202 from POST /events.
type EventAccepted struct {
	Type   events.Type `json:"type"`
	Status string      `json:"status"`
}

// PublishEvent accepts {"type":"...","payload":{...}} from a CRUD service
// and hands it to the event sink. The handlers run detached from the
// request, so a client disconnect does not cancel delivery.
func (h *Handler) PublishEvent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.events == nil {
		rw.ServiceUnavailable("Event ingestion unavailable")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBodyBytes))
	if err != nil {
		rw.BadRequest("Request body too large or unreadable")
		return
	}

	t, p, err := events.DecodeEnvelope(body)
	if err != nil {
		var verr *validation.RequestValidationError
		switch {
		case errors.As(err, &verr):
			rw.ValidationError("Invalid "+string(t)+" payload", verr.Fields())
		case errors.Is(err, events.ErrUnknownEventType):
			rw.BadRequest("Event type is required")
		default:
			rw.BadRequest("Malformed event: " + err.Error())
		}
		return
	}

	ctx := context.WithoutCancel(r.Context())
	log := logging.Ctx(ctx)
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		log.Info().Str("event_type", string(t)).Int64("publisher_id", claims.UserID).Msg("event received over HTTP")
	}

	if err := h.events.Submit(ctx, t, p); err != nil {
		log.Error().Err(err).Str("event_type", string(t)).Msg("failed to submit event")
		rw.ServiceUnavailable("Event could not be queued")
		return
	}

	rw.Accepted(EventAccepted{Type: t, Status: "accepted"})
}
