// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package validation

import (
	"strings"
	"testing"
)

type sample struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Action string `json:"action" validate:"required,oneof=check_in check_out"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Page   int    `json:"page" validate:"min=1"`
	Note   string `validate:"max=5"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		in        sample
		wantField string
		wantMsg   string
	}{
		{
			name: "valid",
			in:   sample{UserID: 1, Action: "check_in", Date: "2024-01-15", Page: 1},
		},
		{
			name:      "missing user",
			in:        sample{Action: "check_in", Date: "2024-01-15", Page: 1},
			wantField: "user_id",
			wantMsg:   "user_id is required",
		},
		{
			name:      "bad action",
			in:        sample{UserID: 1, Action: "lunch", Date: "2024-01-15", Page: 1},
			wantField: "action",
			wantMsg:   "action must be one of: check_in check_out",
		},
		{
			name:      "bad date",
			in:        sample{UserID: 1, Action: "check_out", Date: "15/01/2024", Page: 1},
			wantField: "date",
			wantMsg:   "date must be a date in the form 2006-01-02",
		},
		{
			name:      "page below min",
			in:        sample{UserID: 1, Action: "check_out", Date: "2024-01-15"},
			wantField: "page",
			wantMsg:   "page must be at least 1",
		},
		{
			name:      "field without json tag",
			in:        sample{UserID: 1, Action: "check_out", Date: "2024-01-15", Page: 1, Note: "too long"},
			wantField: "Note",
			wantMsg:   "Note must be at most 5 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.in)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected validation error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
			if _, ok := verr.Fields()[tt.wantField]; !ok {
				t.Errorf("Fields() missing %q", tt.wantField)
			}
		})
	}
}

func TestRequestValidationError_Error(t *testing.T) {
	verr := ValidateStruct(&sample{})
	if verr == nil {
		t.Fatal("expected errors for zero value")
	}
	if len(verr.Errors()) < 3 {
		t.Errorf("expected several failures, got %d", len(verr.Errors()))
	}
	if !strings.Contains(verr.Error(), "; ") {
		t.Errorf("combined message should join with '; ': %q", verr.Error())
	}
	if GetValidator() != GetValidator() {
		t.Error("GetValidator should return a singleton")
	}
}
