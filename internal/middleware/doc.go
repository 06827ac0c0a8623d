// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package middleware provides HTTP middleware shared by the API router.
//
//   - RequestID: accepts or generates X-Request-ID and stores it in the
//     request context for logging.Ctx
//   - PrometheusMetrics: records request counts, durations and in-flight
//     requests, labelled by chi route pattern so path parameters do not
//     explode label cardinality
//
// Both have the func(http.Handler) http.Handler shape chi expects:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID)
//	r.Use(middleware.PrometheusMetrics)
package middleware
