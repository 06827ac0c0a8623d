// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// MemoryCache is an in-process embedding cache backed by ristretto.
//
// ristretto admits writes asynchronously, so a Set may not be visible to an
// immediate Get.
type MemoryCache struct {
	cache *cache.Cache[[]float32]
	rc    *ristretto.Cache
	ttl   time.Duration
}

// NewMemoryCache creates a ristretto-backed cache. maxCost is in bytes of
// vector data; ttl <= 0 keeps entries until evicted.
func NewMemoryCache(maxCost int64, ttl time.Duration) (*MemoryCache, error) {
	if maxCost <= 0 {
		maxCost = 1 << 27
	}
	rc, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	return &MemoryCache{
		cache: cache.New[[]float32](ristretto_store.NewRistretto(rc)),
		rc:    rc,
		ttl:   ttl,
	}, nil
}

// Name implements Cache.
func (m *MemoryCache) Name() string {
	return "memory"
}

// Get implements Cache. Store misses are not errors.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	vec, err := m.cache.Get(ctx, key)
	if err != nil || len(vec) == 0 {
		return nil, false, nil
	}
	return vec, true, nil
}

// Set implements Cache.
func (m *MemoryCache) Set(ctx context.Context, key string, vec []float32) error {
	opts := []store.Option{store.WithCost(int64(len(vec) * 4))}
	if m.ttl > 0 {
		opts = append(opts, store.WithExpiration(m.ttl))
	}
	if err := m.cache.Set(ctx, key, vec, opts...); err != nil {
		return fmt.Errorf("memory cache set: %w", err)
	}
	return nil
}

// Wait blocks until pending writes are applied.
func (m *MemoryCache) Wait() {
	m.rc.Wait()
}

// Close releases the ristretto cache.
func (m *MemoryCache) Close() {
	m.rc.Close()
}

var _ Cache = (*MemoryCache)(nil)
