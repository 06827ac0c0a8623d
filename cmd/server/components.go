// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tomtom215/outfitter/internal/classify"
	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/embedding"
	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/outfit"
	"github.com/tomtom215/outfitter/internal/pools"
	"github.com/tomtom215/outfitter/internal/rerank"
	"github.com/tomtom215/outfitter/internal/search"
	"github.com/tomtom215/outfitter/internal/stylist"
)

// components holds the domain services. Optional ones are nil when their
// configuration is absent.
type components struct {
	reranker   *rerank.Reranker
	classifier classify.Classifier
	extractor  classify.KeywordExtractor
	searcher   search.Searcher
	stylist    *stylist.Stylist
	builder    *pools.Builder
	composer   *outfit.Composer

	memCache  *embedding.MemoryCache
	diskCache *embedding.BadgerCache
}

// Close releases the embedding caches. Safe to call more than once.
func (c *components) Close() {
	if c.memCache != nil {
		c.memCache.Close()
		c.memCache = nil
	}
	if c.diskCache != nil {
		if err := c.diskCache.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close embedding disk cache")
		}
		c.diskCache = nil
	}
}

func buildComponents(ctx context.Context, cfg *config.Config) (*components, error) {
	c := &components{
		builder: pools.NewBuilder(pools.Config{
			TopK:       cfg.Pools.TopK,
			MinPerSlot: cfg.Pools.MinPerSlot,
		}, logging.WithComponent("pools")),
		composer: outfit.NewComposer(logging.WithComponent("composer")),
	}

	if cfg.Embedding.Enabled() {
		if err := c.buildReranker(cfg); err != nil {
			c.Close()
			return nil, err
		}
	} else {
		logging.Warn().Msg("Embedding service not configured; reranking disabled")
	}

	if cfg.Classifier.Enabled() {
		gemini, err := classify.NewGemini(ctx, classify.GeminiConfig{
			APIKey:            cfg.Classifier.APIKey,
			Model:             cfg.Classifier.Model,
			Temperature:       cfg.Classifier.Temperature,
			MaxOutputTokens:   cfg.Classifier.MaxOutputTokens,
			RequestsPerSecond: cfg.Classifier.RequestsPerSecond,
			Breaker:           cfg.Breaker,
		}, &http.Client{Timeout: cfg.Classifier.Timeout}, logging.WithComponent("classifier"))
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("create classifier: %w", err)
		}
		c.classifier = gemini
		c.extractor = gemini
		logging.Info().Str("model", cfg.Classifier.Model).Msg("Vision classifier enabled")
	} else {
		logging.Info().Msg("Vision classifier disabled; keyword rules only")
	}

	if cfg.Search.Enabled() {
		ebay, err := search.NewEbayClient(search.Config{
			BaseURL:           cfg.Search.BaseURL,
			AccessToken:       cfg.Search.AccessToken,
			MarketplaceID:     cfg.Search.MarketplaceID,
			Limit:             cfg.Search.Limit,
			RequestsPerSecond: cfg.Search.RequestsPerSecond,
			Breaker:           cfg.Breaker,
		}, &http.Client{Timeout: cfg.Search.Timeout}, logging.WithComponent("search"))
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("create search client: %w", err)
		}
		c.searcher = ebay

		c.stylist = stylist.New(c.searcher, c.reranker, c.classifier, c.builder, c.composer, stylist.Config{
			SearchLimit:         cfg.Search.Limit,
			ClassifyMax:         cfg.Classifier.MaxItems,
			ClassifyConcurrency: cfg.Classifier.Concurrency,
			ClassifyTimeout:     cfg.Classifier.Timeout,
		}, logging.WithComponent("stylist"))
		if c.extractor != nil {
			c.stylist.WithKeywordExtractor(c.extractor)
		}
	} else {
		logging.Warn().Msg("Search not configured; /search and /style disabled")
	}

	return c, nil
}

// buildReranker wires client -> tiered cache -> reranker.
func (c *components) buildReranker(cfg *config.Config) error {
	client, err := embedding.NewClient(embedding.ClientConfig{
		URL:               cfg.Embedding.URL,
		APIKey:            cfg.Embedding.APIKey,
		Model:             cfg.Embedding.Model,
		Dimension:         cfg.Embedding.Dimension,
		RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
		Burst:             cfg.Embedding.Burst,
		Breaker:           cfg.Breaker,
	}, nil, logging.WithComponent("embedding"))
	if err != nil {
		return fmt.Errorf("create embedding client: %w", err)
	}

	var tiers []embedding.Cache
	if cfg.Embedding.CacheMaxCost > 0 {
		mem, err := embedding.NewMemoryCache(cfg.Embedding.CacheMaxCost, cfg.Embedding.CacheTTL)
		if err != nil {
			return fmt.Errorf("create embedding memory cache: %w", err)
		}
		c.memCache = mem
		tiers = append(tiers, mem)
	}
	if cfg.Embedding.CacheDir != "" {
		disk, err := embedding.OpenBadgerCache(cfg.Embedding.CacheDir, cfg.Embedding.CacheTTL)
		if err != nil {
			return fmt.Errorf("open embedding disk cache: %w", err)
		}
		c.diskCache = disk
		tiers = append(tiers, disk)
	}

	var embedder embedding.Embedder = client
	if len(tiers) > 0 {
		embedder = embedding.NewCachedEmbedder(client, embedding.NewTiered(tiers...), cfg.Embedding.Model, logging.WithComponent("embedding-cache"))
	}

	c.reranker = rerank.New(embedder, rerank.Config{
		Concurrency:    cfg.Embedding.Concurrency,
		RequestTimeout: cfg.Embedding.Timeout,
	}, logging.WithComponent("rerank"))

	logging.Info().
		Str("model", cfg.Embedding.Model).
		Int("cache_tiers", len(tiers)).
		Msg("Reranker enabled")
	return nil
}

// defaultPreferences maps configured composer defaults. Request fields
// override them per call.
func defaultPreferences(cfg *config.Config) outfit.Preferences {
	return outfit.Preferences{
		BudgetMax:       cfg.Outfit.BudgetMax,
		MaxOutfits:      cfg.Outfit.MaxOutfits,
		TopKPerCategory: cfg.Outfit.TopKPerCategory,
		BeamWidth:       cfg.Outfit.BeamWidth,
		AllowReuse:      cfg.Outfit.AllowReuse,
	}
}
