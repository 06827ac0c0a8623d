// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package stylist runs the end-to-end flow: search for candidates, rerank
// them against an inspiration image, classify the best of them, bucket them
// into slot pools and compose outfits.
package stylist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/outfitter/internal/classify"
	"github.com/tomtom215/outfitter/internal/embedding"
	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/outfit"
	"github.com/tomtom215/outfitter/internal/pools"
	"github.com/tomtom215/outfitter/internal/rerank"
	"github.com/tomtom215/outfitter/internal/search"
)

// ErrNoQuery is returned when a request has no query, no keywords and no
// reference image to extract keywords from.
var ErrNoQuery = errors.New("query, keywords or reference image required")

// ErrKeywordExtractionFailed wraps a failure to read keywords from the
// reference image.
var ErrKeywordExtractionFailed = errors.New("keyword extraction failed")

// Config controls the pipeline.
type Config struct {
	// SearchLimit is the number of results fetched per query.
	// Default: 24.
	SearchLimit int `koanf:"search_limit"`

	// ClassifyMax bounds how many of the top items are classified.
	// Default: 40.
	ClassifyMax int `koanf:"classify_max"`

	// ClassifyConcurrency bounds in-flight classification calls.
	// Default: 4.
	ClassifyConcurrency int `koanf:"classify_concurrency"`

	// ClassifyTimeout bounds each classification call.
	// Default: 20s.
	ClassifyTimeout time.Duration `koanf:"classify_timeout"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		SearchLimit:         24,
		ClassifyMax:         40,
		ClassifyConcurrency: 4,
		ClassifyTimeout:     20 * time.Second,
	}
}

// Request is one styling session.
type Request struct {
	Query       string
	Keywords    []string
	Reference   embedding.Source
	Preferences outfit.Preferences
}

// Response carries every stage's output. Keywords is set only when they
// were extracted from the reference image.
type Response struct {
	Keywords []string                  `json:"keywords,omitempty"`
	Items    []models.Item             `json:"items"`
	Debug    *models.RerankDiagnostics `json:"debug,omitempty"`
	Pools    models.CategoryPools      `json:"pools"`
	Outfits  []models.OutfitSuggestion `json:"outfits"`
}

// Stylist wires the pipeline stages together. Reranker and Classifier are
// optional: without a reranker items keep search order, without a
// classifier every slot comes from title keywords.
type Stylist struct {
	searcher   search.Searcher
	reranker   *rerank.Reranker
	classifier classify.Classifier
	extractor  classify.KeywordExtractor
	builder    *pools.Builder
	composer   *outfit.Composer
	cfg        Config
	logger     zerolog.Logger
}

// New creates a Stylist.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(searcher search.Searcher, reranker *rerank.Reranker, classifier classify.Classifier,
	builder *pools.Builder, composer *outfit.Composer, cfg Config, logger zerolog.Logger) *Stylist {
	def := DefaultConfig()
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = def.SearchLimit
	}
	if cfg.ClassifyMax <= 0 {
		cfg.ClassifyMax = def.ClassifyMax
	}
	if cfg.ClassifyConcurrency <= 0 {
		cfg.ClassifyConcurrency = def.ClassifyConcurrency
	}
	if cfg.ClassifyTimeout <= 0 {
		cfg.ClassifyTimeout = def.ClassifyTimeout
	}
	return &Stylist{
		searcher:   searcher,
		reranker:   reranker,
		classifier: classifier,
		builder:    builder,
		composer:   composer,
		cfg:        cfg,
		logger:     logger.With().Str("component", "stylist").Logger(),
	}
}

// WithKeywordExtractor lets requests that carry only a reference image
// search by keywords read from that image.
func (s *Stylist) WithKeywordExtractor(extractor classify.KeywordExtractor) *Stylist {
	s.extractor = extractor
	return s
}

// Style runs the full pipeline.
//
//nolint:gocritic // hugeParam
func (s *Stylist) Style(ctx context.Context, req Request) (*Response, error) {
	items, extracted, err := s.gather(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &Response{Keywords: extracted, Items: items}
	if s.reranker != nil && !req.Reference.Empty() && len(items) > 0 {
		res, err := s.reranker.Rerank(ctx, req.Reference, items)
		if err != nil {
			return nil, fmt.Errorf("rerank: %w", err)
		}
		resp.Items = res.Items
		resp.Debug = &res.Debug
	}

	categorized, attrs, err := s.ClassifyAndBucket(ctx, resp.Items)
	if err != nil {
		return nil, err
	}
	resp.Pools = categorized

	outfits, err := s.composer.Generate(categorized, req.Preferences, attrs.Get)
	if err != nil {
		return nil, err
	}
	resp.Outfits = outfits

	s.logger.Info().
		Int("items", len(resp.Items)).
		Int("pooled", categorized.Total()).
		Int("outfits", len(outfits)).
		Bool("reranked", resp.Debug != nil).
		Msg("styling complete")
	return resp, nil
}

// gather searches the query and every keyword, merging results in order and
// dropping repeated keys. With neither, keywords extracted from the reference
// image are joined into one query and returned.
//
//nolint:gocritic // hugeParam
func (s *Stylist) gather(ctx context.Context, req Request) ([]models.Item, []string, error) {
	queries := make([]string, 0, len(req.Keywords)+1)
	if q := strings.TrimSpace(req.Query); q != "" {
		queries = append(queries, q)
	}
	for _, k := range req.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			queries = append(queries, k)
		}
	}
	var extracted []string
	if len(queries) == 0 {
		if s.extractor == nil || req.Reference.Empty() {
			return nil, nil, ErrNoQuery
		}
		keywords, err := s.extractor.Keywords(ctx, req.Reference)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrKeywordExtractionFailed, err)
		}
		s.logger.Debug().Strs("keywords", keywords).Msg("keywords extracted from reference image")
		extracted = keywords
		queries = append(queries, strings.Join(keywords, " "))
	}

	results := make([][]models.Item, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, q := range queries {
		g.Go(func() error {
			items, err := s.searcher.Search(gctx, q, s.cfg.SearchLimit)
			if err != nil {
				return fmt.Errorf("search %q: %w", q, err)
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	seen := make(map[string]struct{})
	var merged []models.Item
	for _, items := range results {
		for i := range items {
			key := items[i].Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, items[i])
		}
	}
	if merged == nil {
		merged = []models.Item{}
	}
	return merged, extracted, nil
}
