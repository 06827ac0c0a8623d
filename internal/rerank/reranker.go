// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package rerank

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/outfitter/internal/embedding"
	"github.com/tomtom215/outfitter/internal/metrics"
	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/similarity"
)

var (
	// ErrNoReferenceImage is returned when the reference source is empty.
	ErrNoReferenceImage = errors.New("no reference image")

	// ErrReferenceEmbeddingFailed is returned when the reference image cannot be embedded.
	ErrReferenceEmbeddingFailed = errors.New("reference embedding failed")
)

// Config controls candidate embedding fan-out.
type Config struct {
	// Concurrency bounds in-flight candidate embedding requests.
	// Default: 4.
	Concurrency int `json:"concurrency" koanf:"concurrency"`

	// RequestTimeout bounds each candidate embedding request.
	// Default: 15s.
	RequestTimeout time.Duration `json:"request_timeout" koanf:"request_timeout"`
}

// DefaultConfig returns the default reranker configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency:    4,
		RequestTimeout: 15 * time.Second,
	}
}

// Result is the output of a rerank.
type Result struct {
	Items []models.Item              `json:"items"`
	Debug models.RerankDiagnostics `json:"debug"`
}

// Reranker orders items by similarity to a reference image.
type Reranker struct {
	embedder embedding.Embedder
	cfg      Config
	logger   zerolog.Logger
}

// New creates a Reranker. Non-positive config values fall back to defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(embedder embedding.Embedder, cfg Config, logger zerolog.Logger) *Reranker {
	def := DefaultConfig()
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	return &Reranker{
		embedder: embedder,
		cfg:      cfg,
		logger:   logger.With().Str("component", "rerank").Logger(),
	}
}

// scored is a candidate that embedded successfully.
type scored struct {
	item       models.Item
	origIndex  int
	similarity float64
}

// candidateOutcome holds the per-candidate result of the fan-out.
type candidateOutcome struct {
	embedded   bool
	missing    bool
	similarity float64
	fatal      error
}

// Rerank embeds the reference and every candidate, then returns the
// candidates ordered by descending similarity together with diagnostics.
func (r *Reranker) Rerank(ctx context.Context, reference embedding.Source, items []models.Item) (*Result, error) {
	if reference.Empty() {
		return nil, ErrNoReferenceImage
	}

	start := time.Now()
	debug := models.RerankDiagnostics{
		TotalItems: len(items),
		FailedURLs: []string{},
	}

	refCtx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	refVec, err := r.embedder.Embed(refCtx, reference)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReferenceEmbeddingFailed, err)
	}
	debug.ValidReference = true

	outcomes := r.scoreCandidates(ctx, refVec, items)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rerank canceled: %w", err)
	}

	ranked := make([]scored, 0, len(items))
	for i, out := range outcomes {
		switch {
		case out.fatal != nil:
			return nil, fmt.Errorf("score candidate %d: %w", i, out.fatal)
		case out.missing:
			debug.MissingImages++
			debug.FailedURLs = append(debug.FailedURLs, "")
		case !out.embedded:
			debug.FailedURLs = append(debug.FailedURLs, items[i].ImageURL())
		default:
			ranked = append(ranked, scored{item: items[i], origIndex: i, similarity: out.similarity})
		}
	}
	debug.ValidEmbeddings = len(ranked)

	if len(ranked) == 0 {
		r.logger.Warn().
			Int("total_items", len(items)).
			Int("failed", len(debug.FailedURLs)).
			Msg("no candidate embedded, returning original order")
		metrics.RecordRerank(debug, time.Since(start))
		return &Result{Items: append([]models.Item(nil), items...), Debug: debug}, nil
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].similarity > ranked[j].similarity
	})

	out := make([]models.Item, len(ranked))
	for newIndex, s := range ranked {
		out[newIndex] = s.item.WithSimilarity(s.similarity)
		if s.origIndex != newIndex {
			debug.PositionChanges++
		}
	}
	debug.ScoreStats = scoreStats(ranked)
	debug.Effectiveness = float64(debug.PositionChanges) / float64(max(len(items), 1)) * 100

	r.logger.Debug().
		Int("valid", debug.ValidEmbeddings).
		Int("total", debug.TotalItems).
		Int("position_changes", debug.PositionChanges).
		Float64("effectiveness", debug.Effectiveness).
		Msg("rerank complete")
	metrics.RecordRerank(debug, time.Since(start))

	return &Result{Items: out, Debug: debug}, nil
}

// scoreCandidates embeds every candidate with bounded concurrency.
// Per-item failures are recorded in the outcome, never returned.
// Dimension mismatches are recorded as fatal.
func (r *Reranker) scoreCandidates(ctx context.Context, refVec []float32, items []models.Item) []candidateOutcome {
	outcomes := make([]candidateOutcome, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for i := range items {
		url := items[i].ImageURL()
		if url == "" {
			outcomes[i].missing = true
			continue
		}
		g.Go(func() error {
			itemCtx, cancel := context.WithTimeout(gctx, r.cfg.RequestTimeout)
			defer cancel()

			vec, err := r.embedder.Embed(itemCtx, embedding.URLSource(url))
			if err != nil {
				r.logger.Debug().Err(err).Str("url", url).Msg("candidate embedding failed")
				return nil
			}
			sim, err := similarity.Cosine(refVec, vec)
			if err != nil {
				// A mismatched dimension means the service is misconfigured, not that the item is bad.
				outcomes[i].fatal = err
				return nil
			}
			outcomes[i] = candidateOutcome{embedded: true, similarity: sim}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return outcomes
}

// scoreStats computes min, max and mean similarity over ranked candidates.
func scoreStats(ranked []scored) models.ScoreStats {
	stats := models.ScoreStats{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, s := range ranked {
		stats.Min = math.Min(stats.Min, s.similarity)
		stats.Max = math.Max(stats.Max, s.similarity)
		sum += s.similarity
	}
	stats.Avg = sum / float64(len(ranked))
	return stats
}
