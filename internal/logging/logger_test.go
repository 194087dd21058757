// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	Init(Config{Level: level, Format: "json", Timestamp: true, Output: &buf})
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

// useTestLogger swaps in a debug-level JSON logger writing to the returned
// buffer.
func useTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func decodeLine(t *testing.T, line string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return m
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("Timestamp should default to true")
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	buf := captureLogs(t, "warn")

	Info().Msg("hidden")
	Warn().Str("k", "v").Msg("shown")

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %s", out)
	}
	m := decodeLine(t, out)
	if m["message"] != "shown" || m["level"] != "warn" || m["k"] != "v" {
		t.Errorf("unexpected entry: %v", m)
	}
}

func TestErr(t *testing.T) {
	buf := captureLogs(t, "debug")
	Err(errors.New("boom")).Msg("failed")

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["error"] != "boom" {
		t.Errorf("error field = %v, want boom", m["error"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warning", zerolog.WarnLevel},
		{"disabled", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	if ValidLevel("nonsense") {
		t.Error("ValidLevel accepted an unknown level")
	}
}

func TestCtx_AddsIDs(t *testing.T) {
	buf := useTestLogger(t)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	Ctx(ctx).Info().Msg("hello")

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["request_id"] != "req-1" {
		t.Errorf("request_id = %v", m["request_id"])
	}
	if m["correlation_id"] != "corr-1" {
		t.Errorf("correlation_id = %v", m["correlation_id"])
	}
}

func TestCtx_AddsUserID(t *testing.T) {
	buf := useTestLogger(t)

	Ctx(ContextWithUserID(context.Background(), 42)).Info().Msg("authenticated")
	Ctx(context.Background()).Info().Msg("anonymous")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if m := decodeLine(t, lines[0]); m["user_id"] != float64(42) {
		t.Errorf("user_id = %v, want 42", m["user_id"])
	}
	if m := decodeLine(t, lines[1]); m["user_id"] != nil {
		t.Errorf("anonymous line has user_id %v", m["user_id"])
	}
}

func TestGenerateCorrelationID(t *testing.T) {
	a, b := GenerateCorrelationID(), GenerateCorrelationID()
	if len(a) != 8 {
		t.Errorf("len = %d, want 8", len(a))
	}
	if a == b {
		t.Error("correlation ids should differ")
	}
}

func TestSlogHandler(t *testing.T) {
	buf := captureLogs(t, "debug")

	logger := NewSlogLogger().With("service", "http").WithGroup("sup")
	logger.Warn("service restarted", slog.Int("attempt", 2))

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["level"] != "warn" {
		t.Errorf("level = %v, want warn", m["level"])
	}
	if m["service"] != "http" {
		t.Errorf("service = %v", m["service"])
	}
	if m["sup.attempt"] != float64(2) {
		t.Errorf("sup.attempt = %v", m["sup.attempt"])
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken(""); got != "" {
		t.Errorf("empty -> %q", got)
	}
	if got := SanitizeToken("short"); got != "***" {
		t.Errorf("short -> %q", got)
	}
	if got := SanitizeToken("abcdefghijklmnop"); got != "abcd...mnop" {
		t.Errorf("long -> %q", got)
	}
	if got := SanitizeError("bad bearer header"); got != "authentication error" {
		t.Errorf("SanitizeError = %q", got)
	}
}
