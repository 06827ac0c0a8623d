// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/outfitter/internal/logging"
)

// Auth modes.
const (
	ModeNone = "none"
	ModeJWT  = "jwt"
)

type contextKey string

const claimsContextKey contextKey = "claims"

var errMissingBearer = errors.New("missing bearer token")

// ErrorWriter writes an authentication failure. The API supplies one that
// renders its JSON envelope.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, message string)

// Middleware enforces the configured auth mode.
type Middleware struct {
	mode     string
	jwt      *JWTManager
	writeErr ErrorWriter
}

// NewMiddleware creates the middleware. jwt may be nil when mode is none.
func NewMiddleware(mode string, jwt *JWTManager, writeErr ErrorWriter) *Middleware {
	if writeErr == nil {
		writeErr = func(w http.ResponseWriter, _ *http.Request, status int, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{mode: mode, jwt: jwt, writeErr: writeErr}
}

// Authenticate rejects requests without a valid bearer token in jwt mode.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.mode != ModeJWT {
			next.ServeHTTP(w, r)
			return
		}

		token, err := bearerToken(r)
		if err == nil {
			var claims *Claims
			claims, err = m.jwt.ValidateToken(token)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsContextKey, claims)))
				return
			}
		}

		logging.Ctx(r.Context()).Debug().Err(err).Msg("authentication failed")
		w.Header().Set("WWW-Authenticate", `Bearer realm="outfitter"`)
		m.writeErr(w, r, http.StatusUnauthorized, "authentication required")
	})
}

func bearerToken(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingBearer
	}
	return strings.TrimSpace(token), nil
}

// ClaimsFromContext returns the verified claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}
