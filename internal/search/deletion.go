// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package search

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrDeletionNotConfigured is returned when the verify token or endpoint is unset.
var ErrDeletionNotConfigured = errors.New("account deletion endpoint not configured")

// ChallengeResponse answers eBay's endpoint validation challenge:
// hex(sha256(challengeCode + verifyToken + endpoint)).
func ChallengeResponse(challengeCode, verifyToken, endpoint string) (string, error) {
	if challengeCode == "" {
		return "", errors.New("missing challenge_code")
	}
	if verifyToken == "" || endpoint == "" {
		return "", ErrDeletionNotConfigured
	}
	h := sha256.New()
	h.Write([]byte(challengeCode))
	h.Write([]byte(verifyToken))
	h.Write([]byte(endpoint))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DeletionNotification is the body eBay posts when a marketplace user asks
// for their account data to be deleted.
type DeletionNotification struct {
	Metadata struct {
		Topic         string `json:"topic"`
		SchemaVersion string `json:"schemaVersion"`
		Deprecated    bool   `json:"deprecated"`
	} `json:"metadata"`
	Notification struct {
		NotificationID      string    `json:"notificationId"`
		EventDate           time.Time `json:"eventDate"`
		PublishDate         time.Time `json:"publishDate"`
		PublishAttemptCount int       `json:"publishAttemptCount"`
		Data                struct {
			Username  string `json:"username"`
			UserID    string `json:"userId"`
			EIASToken string `json:"eiasToken"`
		} `json:"data"`
	} `json:"notification"`
}
