// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package api

// NotificationListRequest holds the validated query of GET /notifications.
type NotificationListRequest struct {
	Page       int `validate:"min=1"`
	PageSize   int `validate:"min=1,max=100"`
	UnreadOnly bool
}
