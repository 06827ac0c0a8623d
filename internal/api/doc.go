// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package api exposes the outfit engine over HTTP using the Chi router.
//
// # Endpoints
//
// All routes live under /api/v1:
//
//	GET  /health                   status, version and configured components
//	GET  /health/live              liveness
//	GET  /health/ready             readiness and configured components
//	POST /rerank                   order items by similarity to a reference image
//	POST /outfits                  compose outfits from category pools
//	POST /pools                    build category pools from (classified) items
//	POST /classify                 classify one item image
//	POST /keywords                 search keywords from an inspiration image
//	GET  /search?q=&limit=         search marketplace listings
//	POST /style                    search, rerank, classify, pool and compose in one call
//	GET  /ebay/account-deletion    marketplace challenge handshake
//	POST /ebay/account-deletion    marketplace deletion notification
//
// /metrics serves Prometheus collectors and /swagger/ serves the API docs.
//
// # Responses
//
// JSON bodies use the APIResponse envelope:
//
//	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
//	{"success": false, "error": {"code": "BAD_REQUEST", "message": "..."}}
//
// Degraded results (some candidates failed to embed or classify) are still
// 200 responses; the diagnostics say what was dropped. A collaborator failing
// for the whole call (reference image, search) is 502 EXTERNAL_SERVICE_ERROR,
// and an open circuit breaker is 503.
//
// The account-deletion challenge answers with the bare JSON body the
// marketplace expects, outside the envelope.
package api
