// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/outfitter/internal/breaker"
	"github.com/tomtom215/outfitter/internal/classify"
	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/search"
	"github.com/tomtom215/outfitter/internal/stylist"
)

// maxSearchLimit caps the limit query parameter of GET /search.
const maxSearchLimit = 200

// RerankResponse is the body of a successful POST /rerank.
type RerankResponse struct {
	Items []models.Item            `json:"items"`
	Debug models.RerankDiagnostics `json:"debug"`
}

// OutfitsResponse is the body of a successful POST /outfits.
type OutfitsResponse struct {
	Outfits []models.OutfitSuggestion `json:"outfits"`
}

// PoolsResponse is the body of a successful POST /pools.
type PoolsResponse struct {
	Pools      models.CategoryPools `json:"pools"`
	Counts     map[models.Slot]int  `json:"counts"`
	Backfilled int                  `json:"backfilled"`
}

// ClassifyResponse is the body of a successful POST /classify. Classified
// is false when the model gave no usable label.
type ClassifyResponse struct {
	Classified bool `json:"classified"`
	classify.Result
}

// KeywordsResponse is the body of a successful POST /keywords.
type KeywordsResponse struct {
	Keywords []string `json:"keywords"`
}

// SearchResponse is the body of a successful GET /search.
type SearchResponse struct {
	Query string        `json:"query"`
	Items []models.Item `json:"items"`
}

// Rerank orders items by visual similarity to a reference image.
//
// @Summary Rerank items against a reference image
// @Description Embeds the reference image and every candidate, then returns the candidates sorted by cosine similarity. Candidates whose image cannot be embedded are dropped; if none embed, the original order is returned.
// @Tags Outfits
// @Accept json
// @Produce json
// @Param request body RerankRequest true "Reference image and candidates"
// @Success 200 {object} APIResponse{data=RerankResponse} "Reranked items with diagnostics"
// @Failure 400 {object} APIResponse "Invalid request or missing reference image"
// @Failure 502 {object} APIResponse "Reference image could not be embedded"
// @Failure 503 {object} APIResponse "Reranker not configured"
// @Router /rerank [post]
func (h *Handler) Rerank(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.reranker == nil {
		rw.ServiceUnavailable("reranker not configured")
		return
	}

	var req RerankRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	ref, err := req.ReferenceImage.Source()
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	res, err := h.reranker.Rerank(r.Context(), ref, req.Items)
	if err != nil {
		respondPipelineError(rw, r, "embedding", err)
		return
	}
	rw.Success(RerankResponse{Items: res.Items, Debug: res.Debug})
}

// Outfits composes outfits from pre-bucketed pools.
//
// @Summary Compose outfits
// @Description Runs beam search over the slot pools and returns up to maxOutfits scored outfits. Unset preferences take the server defaults.
// @Tags Outfits
// @Accept json
// @Produce json
// @Param request body OutfitsRequest true "Pools, preferences and optional per-item attributes"
// @Success 200 {object} APIResponse{data=OutfitsResponse} "Composed outfits"
// @Failure 400 {object} APIResponse "Invalid pools or preferences"
// @Router /outfits [post]
func (h *Handler) Outfits(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req OutfitsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	prefs := mergePreferences(h.defaults, req.Preferences)
	attrs := models.AttributeIndex(req.Attributes)
	outfits, err := h.composer.Generate(req.Pools, prefs, attrs.Get)
	if err != nil {
		respondPipelineError(rw, r, "composer", err)
		return
	}
	rw.Success(OutfitsResponse{Outfits: outfits})
}

// Pools buckets classified items into slot pools, then tops up thin slots
// from unclassified items by title keywords.
//
// @Summary Build slot pools
// @Tags Outfits
// @Accept json
// @Produce json
// @Param request body PoolsRequest true "Classified and unclassified items"
// @Success 200 {object} APIResponse{data=PoolsResponse} "Slot pools"
// @Failure 400 {object} APIResponse "Invalid request"
// @Router /pools [post]
func (h *Handler) Pools(w http.ResponseWriter, r *http.Request) {
	var req PoolsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	categorized := h.builder.Build(req.Items)
	added := h.builder.Backfill(categorized, req.Unclassified)
	NewResponseWriter(w, r).Success(PoolsResponse{
		Pools:      categorized,
		Counts:     categorized.Counts(),
		Backfilled: added,
	})
}

// Classify labels one product image with slot, palette and vibe.
//
// @Summary Classify a product image
// @Tags Outfits
// @Accept json
// @Produce json
// @Param request body ClassifyRequest true "Image URL and optional title"
// @Success 200 {object} APIResponse{data=ClassifyResponse} "Labels, or classified=false"
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 502 {object} APIResponse "Classifier failed"
// @Failure 503 {object} APIResponse "Classifier not configured"
// @Router /classify [post]
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.classifier == nil {
		rw.ServiceUnavailable("classifier not configured")
		return
	}

	var req ClassifyRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	res, err := h.classifier.Classify(r.Context(), classify.Request{ImageURL: req.ImageURL, Title: req.Title})
	switch {
	case errors.Is(err, classify.ErrNoClassification):
		rw.Success(ClassifyResponse{})
	case err != nil:
		if ctxErr := r.Context().Err(); ctxErr != nil {
			respondPipelineError(rw, r, "classifier", ctxErr)
			return
		}
		respondExternal(rw, r, "classifier", err)
	default:
		rw.Success(ClassifyResponse{Classified: true, Result: res})
	}
}

// Keywords reads search keywords from an inspiration image.
//
// @Summary Extract search keywords from an image
// @Description Asks the vision model for 3-5 keywords describing the main garment. The first keyword is usually its slot.
// @Tags Outfits
// @Accept json
// @Produce json
// @Param request body KeywordsRequest true "Image URL or base64 data"
// @Success 200 {object} APIResponse{data=KeywordsResponse} "Keywords"
// @Failure 400 {object} APIResponse "Missing or invalid image"
// @Failure 502 {object} APIResponse "Model failed or named no keywords"
// @Failure 503 {object} APIResponse "Keyword extraction not configured"
// @Router /keywords [post]
func (h *Handler) Keywords(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.extractor == nil {
		rw.ServiceUnavailable("keyword extraction not configured")
		return
	}

	var req KeywordsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	src, err := req.Image.Source()
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if src.Empty() {
		rw.BadRequest("image url or data is required")
		return
	}

	keywords, err := h.extractor.Keywords(r.Context(), src)
	if err != nil {
		if ctxErr := r.Context().Err(); ctxErr != nil {
			respondPipelineError(rw, r, "keywords", ctxErr)
			return
		}
		respondExternal(rw, r, "keywords", err)
		return
	}
	rw.Success(KeywordsResponse{Keywords: keywords})
}

// Search queries the marketplace.
//
// @Summary Search marketplace listings
// @Tags Marketplace
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results (1-200)"
// @Success 200 {object} APIResponse{data=SearchResponse} "Listings"
// @Failure 400 {object} APIResponse "Missing query or bad limit"
// @Failure 502 {object} APIResponse "Marketplace failed"
// @Failure 503 {object} APIResponse "Search not configured"
// @Router /search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.searcher == nil {
		rw.ServiceUnavailable("search not configured")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		rw.BadRequest("q is required")
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSearchLimit {
			rw.BadRequest("limit must be an integer between 1 and " + strconv.Itoa(maxSearchLimit))
			return
		}
		limit = n
	}

	items, err := h.searcher.Search(r.Context(), query, limit)
	if err != nil {
		if ctxErr := r.Context().Err(); ctxErr != nil {
			respondPipelineError(rw, r, "search", ctxErr)
			return
		}
		respondExternal(rw, r, "search", err)
		return
	}
	rw.Success(SearchResponse{Query: query, Items: items})
}

// Style runs search, rerank, classification, bucketing and composition in
// one call.
//
// @Summary Search, rerank and compose outfits
// @Description Searches the query and keywords. With neither, keywords are extracted from the reference image.
// @Tags Outfits
// @Accept json
// @Produce json
// @Param request body StyleRequest true "Query or keywords, optional reference image and preferences"
// @Success 200 {object} APIResponse{data=stylist.Response} "Items, pools and outfits"
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 502 {object} APIResponse "An upstream service failed"
// @Failure 503 {object} APIResponse "Search not configured"
// @Router /style [post]
func (h *Handler) Style(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.stylist == nil {
		rw.ServiceUnavailable("search not configured")
		return
	}

	var req StyleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	ref, err := req.ReferenceImage.Source()
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	resp, err := h.stylist.Style(r.Context(), stylist.Request{
		Query:       req.Query,
		Keywords:    req.Keywords,
		Reference:   ref,
		Preferences: mergePreferences(h.defaults, req.Preferences),
	})
	if err != nil {
		respondPipelineError(rw, r, "stylist", err)
		return
	}
	rw.Success(resp)
}

// respondExternal treats any error other than a client mistake or an open
// circuit as a failure of the named remote service.
func respondExternal(rw *ResponseWriter, r *http.Request, service string, err error) {
	if breaker.IsRejected(err) || errors.Is(err, search.ErrEmptyQuery) {
		respondPipelineError(rw, r, service, err)
		return
	}
	rw.ExternalServiceError(service, err)
}
