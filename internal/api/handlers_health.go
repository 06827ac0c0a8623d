// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status     string          `json:"status"`
	Version    string          `json:"version"`
	Uptime     float64         `json:"uptime"`
	Components map[string]bool `json:"components"`
}

// Health reports overall status and which optional components are wired.
//
// @Summary Get service health
// @Description Returns status, version, uptime and the configured components. Status is "degraded" when the reranker is not configured.
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	components := h.components()
	status := "healthy"
	if !components["reranker"] {
		status = "degraded"
	}
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:     status,
		Version:    h.version,
		Uptime:     time.Since(h.startTime).Seconds(),
		Components: components,
	})
}

// HealthLive is the liveness probe.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady is the readiness probe. Composition needs no remote service,
// so the process is ready once the handler exists.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Service is ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"ready":      true,
		"components": h.components(),
	})
}
