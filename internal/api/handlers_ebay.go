// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/search"
)

// EbayDeletionChallenge answers eBay's endpoint validation challenge.
//
// @Summary Marketplace account deletion challenge
// @Description eBay calls this with challenge_code when the endpoint is registered. The body is not wrapped in the API envelope.
// @Tags Marketplace
// @Produce json
// @Param challenge_code query string true "Challenge code"
// @Success 200 {object} map[string]string "challengeResponse"
// @Failure 400 {object} APIResponse "Missing challenge_code"
// @Failure 503 {object} APIResponse "Verify token or endpoint not configured"
// @Router /ebay/account-deletion [get]
func (h *Handler) EbayDeletionChallenge(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	resp, err := search.ChallengeResponse(r.URL.Query().Get("challenge_code"), h.verifyToken, h.deletionEndpoint)
	switch {
	case errors.Is(err, search.ErrDeletionNotConfigured):
		rw.ServiceUnavailable(err.Error())
	case err != nil:
		rw.BadRequest(err.Error())
	default:
		writeRawJSON(w, http.StatusOK, map[string]string{"challengeResponse": resp})
	}
}

// EbayDeletionNotification acknowledges an account deletion notification.
// No marketplace user data is stored, so there is nothing to erase.
//
// @Summary Marketplace account deletion notification
// @Tags Marketplace
// @Accept json
// @Param notification body search.DeletionNotification true "Notification"
// @Success 204 "Acknowledged"
// @Failure 400 {object} APIResponse "Invalid body"
// @Router /ebay/account-deletion [post]
func (h *Handler) EbayDeletionNotification(w http.ResponseWriter, r *http.Request) {
	var n search.DeletionNotification
	if !h.decodeJSON(w, r, &n) {
		return
	}
	logging.Ctx(r.Context()).Info().
		Str("notification_id", n.Notification.NotificationID).
		Str("topic", n.Metadata.Topic).
		Msg("Account deletion notification acknowledged")
	NewResponseWriter(w, r).NoContent()
}
