// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package logging provides the zerolog-based structured logging used across
// Outfitter.
//
// The package provides:
//   - A process-wide logger configured once from main
//   - JSON output for production and console output for development
//   - Request ID propagation through context.Context
//   - An slog.Handler adapter for libraries that only accept slog (sutureslog)
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("query", q).Msg("search started")
//	logging.Ctx(ctx).Warn().Err(err).Msg("classifier unavailable")
//
// Components take a zerolog.Logger in their constructors and tag it:
//
//	logger := logging.WithComponent("reranker")
//
// # Configuration
//
// Level, format and caller reporting come from the [logging] config section
// (LOG_LEVEL, LOG_FORMAT, LOG_CALLER in the environment).
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
