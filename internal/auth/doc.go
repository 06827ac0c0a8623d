// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package auth provides optional JWT bearer authentication for the API.
//
// With AUTH_MODE=none every request passes. With AUTH_MODE=jwt requests must
// carry "Authorization: Bearer <token>" signed with JWT_SECRET (HS256). The
// verified claims are stored in the request context:
//
//	claims, ok := auth.ClaimsFromContext(r.Context())
//
// Tokens are minted out of band, for example with JWTManager.GenerateToken
// from an operator tool. There is no login endpoint.
package auth
