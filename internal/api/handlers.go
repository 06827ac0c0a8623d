// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/outfitter/internal/breaker"
	"github.com/tomtom215/outfitter/internal/classify"
	"github.com/tomtom215/outfitter/internal/embedding"
	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/outfit"
	"github.com/tomtom215/outfitter/internal/pools"
	"github.com/tomtom215/outfitter/internal/rerank"
	"github.com/tomtom215/outfitter/internal/search"
	"github.com/tomtom215/outfitter/internal/similarity"
	"github.com/tomtom215/outfitter/internal/stylist"
)

// defaultMaxBodyBytes fits a base64 reference image plus a full item list.
const defaultMaxBodyBytes = 12 << 20

// Dependencies are the components a Handler serves. Reranker, Classifier,
// Extractor, Searcher and Stylist are optional; their endpoints answer 503
// when unset.
type Dependencies struct {
	Reranker   *rerank.Reranker
	Classifier classify.Classifier
	Extractor  classify.KeywordExtractor
	Searcher   search.Searcher
	Stylist    *stylist.Stylist
	Builder    *pools.Builder
	Composer   *outfit.Composer

	// Defaults fill unset request preferences.
	Defaults outfit.Preferences

	// VerifyToken and DeletionEndpoint answer eBay's account deletion challenge.
	VerifyToken      string
	DeletionEndpoint string

	MaxBodyBytes int64
	Version      string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, error mapping
//   - handlers_health.go: liveness and readiness
//   - handlers_outfit.go: rerank, pools, outfits, classify, keywords, search, style
//   - handlers_ebay.go: marketplace account deletion notifications
type Handler struct {
	reranker   *rerank.Reranker
	classifier classify.Classifier
	extractor  classify.KeywordExtractor
	searcher   search.Searcher
	stylist    *stylist.Stylist
	builder    *pools.Builder
	composer   *outfit.Composer

	defaults         outfit.Preferences
	verifyToken      string
	deletionEndpoint string
	maxBodyBytes     int64
	version          string
	startTime        time.Time
}

// NewHandler creates a Handler. A nil Builder or Composer is replaced by
// one built with default settings.
//
//nolint:gocritic // hugeParam: called once at startup
func NewHandler(deps Dependencies) *Handler {
	if deps.Builder == nil {
		deps.Builder = pools.NewBuilder(pools.DefaultConfig(), logging.Logger())
	}
	if deps.Composer == nil {
		deps.Composer = outfit.NewComposer(logging.Logger())
	}
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = defaultMaxBodyBytes
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}
	return &Handler{
		reranker:         deps.Reranker,
		classifier:       deps.Classifier,
		extractor:        deps.Extractor,
		searcher:         deps.Searcher,
		stylist:          deps.Stylist,
		builder:          deps.Builder,
		composer:         deps.Composer,
		defaults:         deps.Defaults,
		verifyToken:      deps.VerifyToken,
		deletionEndpoint: deps.DeletionEndpoint,
		maxBodyBytes:     deps.MaxBodyBytes,
		version:          deps.Version,
		startTime:        time.Now(),
	}
}

// components reports which optional components are configured.
func (h *Handler) components() map[string]bool {
	return map[string]bool{
		"reranker":   h.reranker != nil,
		"classifier": h.classifier != nil,
		"keywords":   h.extractor != nil,
		"search":     h.searcher != nil,
		"stylist":    h.stylist != nil,
	}
}

// respondPipelineError maps a pipeline error to a status code. Errors the
// caller caused are 400s, failures of a remote service are 502s and an
// open circuit is a 503.
func respondPipelineError(rw *ResponseWriter, r *http.Request, service string, err error) {
	var statusErr *search.StatusError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, service+" timed out")
	case errors.Is(err, context.Canceled):
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Request canceled by client")
		rw.ServiceUnavailable("request canceled")
	case breaker.IsRejected(err):
		rw.ServiceUnavailable(service + " temporarily unavailable")
	case errors.Is(err, rerank.ErrNoReferenceImage),
		errors.Is(err, embedding.ErrEmptySource),
		errors.Is(err, stylist.ErrNoQuery),
		errors.Is(err, search.ErrEmptyQuery),
		errors.Is(err, outfit.ErrInvalidPreferences):
		rw.BadRequest(err.Error())
	case errors.Is(err, embedding.ErrUnsupportedImage):
		rw.BadRequest("reference image is not a supported image")
	case errors.Is(err, rerank.ErrReferenceEmbeddingFailed),
		errors.Is(err, stylist.ErrKeywordExtractionFailed),
		errors.Is(err, similarity.ErrDimensionMismatch),
		errors.Is(err, embedding.ErrDimension),
		errors.As(err, &statusErr):
		rw.ExternalServiceError(service, err)
	default:
		rw.InternalError(err)
	}
}
