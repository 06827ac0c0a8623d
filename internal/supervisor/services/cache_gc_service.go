// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package services

import (
	"context"
	"time"

	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/metrics"
)

// GarbageCollector is satisfied by *embedding.BadgerCache.
type GarbageCollector interface {
	RunGC(discardRatio float64) (int, error)
}

// CacheGCService reclaims space in the embedding disk cache on an interval.
// A failed pass is logged and counted, never returned: the cache stays
// usable and the next tick tries again.
type CacheGCService struct {
	gc           GarbageCollector
	interval     time.Duration
	discardRatio float64
	name         string
}

// NewCacheGCService creates the service. Zero interval means 10m; a ratio
// outside (0,1) means 0.5.
func NewCacheGCService(gc GarbageCollector, interval time.Duration, discardRatio float64) *CacheGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &CacheGCService{
		gc:           gc,
		interval:     interval,
		discardRatio: discardRatio,
		name:         "embedding-cache-gc",
	}
}

// Serve implements suture.Service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *CacheGCService) runOnce() {
	start := time.Now()
	rewritten, err := s.gc.RunGC(s.discardRatio)
	switch {
	case err != nil:
		metrics.RecordEmbeddingCacheGC("error")
		logging.Warn().Err(err).Int("rewritten", rewritten).Msg("Embedding cache GC failed")
	case rewritten > 0:
		metrics.RecordEmbeddingCacheGC("rewritten")
		logging.Info().Int("rewritten", rewritten).Dur("duration", time.Since(start)).Msg("Embedding cache GC reclaimed space")
	default:
		metrics.RecordEmbeddingCacheGC("noop")
	}
}

// String implements fmt.Stringer.
func (s *CacheGCService) String() string {
	return s.name
}
