// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

// Package validation wraps go-playground/validator v10 with a shared
// instance and readable messages.
//
// Event payloads and HTTP query structs declare their rules as tags:
//
//	type LeaveApproved struct {
//	    UserID    int64  `json:"user_id" validate:"required,gt=0"`
//	    StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
//	}
//
//	if verr := validation.ValidateStruct(&p); verr != nil {
//	    return verr
//	}
//
// Messages use json field names ("user_id is required").
package validation
