// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package logging

import "strings"

// SanitizeToken masks a bearer token, keeping the first and last 4 characters.
// Example: "eyJhbGciOiJIUzI1NiIs...kpXV" -> "eyJh...kpXV"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeError hides error text that mentions credentials and truncates the rest.
func SanitizeError(err string) string {
	lower := strings.ToLower(err)
	for _, pattern := range []string{"password", "secret", "bearer", "authorization"} {
		if strings.Contains(lower, pattern) {
			return "authentication error"
		}
	}
	if len(err) > 200 {
		return err[:200] + "..."
	}
	return err
}
