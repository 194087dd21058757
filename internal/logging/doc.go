// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

// Package logging provides centralized zerolog-based structured logging for Dayflow.
//
// A single global logger is configured once at startup from the logging
// section of the configuration and used everywhere through level helpers.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int64("user_id", 42).Msg("websocket authenticated")
//	logging.Err(err).Str("event_type", "leave_approved").Msg("handler failed")
//
// # Context
//
// HTTP middleware stores a request id and every event dispatch stores a
// correlation id. Ctx(ctx) returns a logger that includes both:
//
//	logging.Ctx(ctx).Debug().Msg("push delivered")
//
// # slog
//
// The supervisor tree (suture + sutureslog) expects an *slog.Logger.
// NewSlogLogger returns one backed by the same zerolog output.
//
// # Field Names
//
// time, level, message, error, caller. Always finish chains with Msg or Send;
// an unfinished chain writes nothing.
package logging
