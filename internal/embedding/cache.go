// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package embedding

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/metrics"
)

// Cache stores embeddings by key. Get reports a miss with ok=false and a nil
// error; errors are reserved for storage failures.
type Cache interface {
	Get(ctx context.Context, key string) (vec []float32, ok bool, err error)
	Set(ctx context.Context, key string, vec []float32) error
	Name() string
}

// CacheKey namespaces an image URL by model so vectors from different
// models never mix.
func CacheKey(model, url string) string {
	return model + "|" + url
}

// Tiered checks caches in order and promotes hits to the faster tiers.
type Tiered struct {
	tiers []Cache
}

// NewTiered stacks caches, fastest first.
func NewTiered(tiers ...Cache) *Tiered {
	return &Tiered{tiers: tiers}
}

// Name implements Cache.
func (t *Tiered) Name() string {
	return "tiered"
}

// Get implements Cache.
func (t *Tiered) Get(ctx context.Context, key string) ([]float32, bool, error) {
	for i, c := range t.tiers {
		vec, ok, err := c.Get(ctx, key)
		metrics.RecordEmbeddingCache(c.Name(), ok && err == nil)
		if err != nil || !ok {
			continue
		}
		for j := 0; j < i; j++ {
			_ = t.tiers[j].Set(ctx, key, vec) //nolint:errcheck // promotion is best effort
		}
		return vec, true, nil
	}
	return nil, false, nil
}

// Set implements Cache. Every tier is written; the first error is returned.
func (t *Tiered) Set(ctx context.Context, key string, vec []float32) error {
	var first error
	for _, c := range t.tiers {
		if err := c.Set(ctx, key, vec); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// CachedEmbedder serves URL sources from a cache and falls back to the
// wrapped Embedder on a miss.
type CachedEmbedder struct {
	next   Embedder
	cache  Cache
	model  string
	logger zerolog.Logger
}

// NewCachedEmbedder wraps next with cache.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCachedEmbedder(next Embedder, cache Cache, model string, logger zerolog.Logger) *CachedEmbedder {
	return &CachedEmbedder{
		next:   next,
		cache:  cache,
		model:  model,
		logger: logger.With().Str("component", "embedding_cache").Logger(),
	}
}

// Embed implements Embedder.
func (e *CachedEmbedder) Embed(ctx context.Context, src Source) ([]float32, error) {
	if !src.Cacheable() {
		return e.next.Embed(ctx, src)
	}

	key := CacheKey(e.model, src.URL)
	vec, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Warn().Err(err).Str("url", src.URL).Msg("embedding cache read failed")
	}
	if ok {
		return vec, nil
	}

	vec, err = e.next.Embed(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := e.cache.Set(ctx, key, vec); err != nil {
		e.logger.Warn().Err(err).Str("url", src.URL).Msg("embedding cache write failed")
	}
	return vec, nil
}

var (
	_ Embedder = (*CachedEmbedder)(nil)
	_ Cache    = (*Tiered)(nil)
)
