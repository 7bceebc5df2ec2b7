// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

// Package logging provides the process-wide zerolog logger for PlanAdvisor.
//
// The logger is configured once at startup from config.LoggingConfig:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("Server starting")
//
// Request-scoped logging picks up the request ID stored by the HTTP middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Prediction failed")
//
// Libraries that speak log/slog (suture via sutureslog) are bridged through
// NewSlogLogger, so every line ends up in the same zerolog stream.
//
// Always terminate event chains with Msg or Send; an unterminated event is
// never written.
package logging
