// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package main provides the Outfitter HTTP server
//
// @title Outfitter API
// @version 1.0
// @description Visual reranking of marketplace listings and outfit composition.
// @description
// @description ## Authentication
// @description
// @description With AUTH_MODE=jwt every /api/v1 route except health and the eBay
// @description account-deletion endpoint requires `Authorization: Bearer <token>`.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {"code": "ERROR_CODE", "message": "Human-readable message"},
// @description   "metadata": {"timestamp": "2026-01-01T00:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/outfitter/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer token: "Bearer <token>".
//
// @tag.name Core
// @tag.description Health checks
//
// @tag.name Outfits
// @tag.description Reranking, pools, classification and outfit composition
//
// @tag.name Marketplace
// @tag.description eBay search and account-deletion notifications
package main
