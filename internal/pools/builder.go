// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package pools

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/metrics"
	"github.com/tomtom215/outfitter/internal/models"
)

// Classified is an item with the slot assigned by the classifier, if any.
type Classified struct {
	Item models.Item `json:"item" validate:"required"`
	Slot models.Slot `json:"slot,omitempty" validate:"omitempty,oneof=top bottom jacket footwear accessory"`
}

// Config controls pool building.
type Config struct {
	// TopK trims each slot after building. 0 keeps every item.
	// Default: 0 (the composer applies its own per-slot limit).
	TopK int `json:"top_k" koanf:"top_k" validate:"gte=0"`

	// MinPerSlot is the backfill target for thin slots.
	// Default: 5.
	MinPerSlot int `json:"min_per_slot" koanf:"min_per_slot" validate:"gte=0"`
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{MinPerSlot: 5}
}

// BackfillSlots are the slots topped up from unclassified items.
var BackfillSlots = []models.Slot{models.SlotTop, models.SlotBottom, models.SlotJacket}

// Builder groups classified items into category pools.
type Builder struct {
	cfg    Config
	rules  *Matcher
	logger zerolog.Logger
}

// NewBuilder creates a Builder using DefaultRules.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBuilder(cfg Config, logger zerolog.Logger) *Builder {
	if cfg.MinPerSlot < 0 {
		cfg.MinPerSlot = 0
	}
	return &Builder{
		cfg:    cfg,
		rules:  defaultMatcher,
		logger: logger.With().Str("component", "pools").Logger(),
	}
}

// WithRules returns a copy of the builder using rules for the fallback guess.
func (b *Builder) WithRules(rules KeywordRules) *Builder {
	cp := *b
	cp.rules = rules.Compile()
	return &cp
}

// Build appends each item to its slot in input order. A classifier slot is
// used as-is; otherwise the title fallback decides. Within a slot the second
// occurrence of a key is dropped.
func (b *Builder) Build(items []Classified) models.CategoryPools {
	pools := models.NewCategoryPools()
	seen := make(map[models.Slot]map[string]struct{}, models.SlotCount)
	for _, slot := range models.AllSlots {
		seen[slot] = make(map[string]struct{})
	}

	guessed := 0
	for i := range items {
		slot := items[i].Slot
		if !slot.Valid() {
			slot = b.rules.Fallback(items[i].Item.Title)
			guessed++
		}
		key := items[i].Item.Key()
		if _, dup := seen[slot][key]; dup {
			continue
		}
		seen[slot][key] = struct{}{}
		pools[slot] = append(pools[slot], items[i].Item)
	}

	if b.cfg.TopK > 0 {
		pools = Trim(pools, b.cfg.TopK)
	}

	b.logger.Debug().
		Int("items", len(items)).
		Int("guessed", guessed).
		Interface("counts", pools.Counts()).
		Msg("pools built")
	metrics.RecordPoolSizes(pools)

	return pools
}

// Backfill tops up BackfillSlots holding fewer than MinPerSlot items with
// unclassified items whose title guess names the needy slot. Items already
// present in any pool are skipped. It returns the number of items added.
func (b *Builder) Backfill(pools models.CategoryPools, unclassified []models.Item) int {
	need := make(map[models.Slot]int, len(BackfillSlots))
	for _, slot := range BackfillSlots {
		if n := b.cfg.MinPerSlot - len(pools[slot]); n > 0 {
			need[slot] = n
		}
	}
	if len(need) == 0 {
		return 0
	}

	present := make(map[string]struct{}, pools.Total())
	for _, items := range pools {
		for i := range items {
			present[items[i].Key()] = struct{}{}
		}
	}

	added := 0
	for i := range unclassified {
		it := unclassified[i]
		key := it.Key()
		if _, ok := present[key]; ok {
			continue
		}
		slot, ok := b.rules.Guess(it.Title)
		if !ok || need[slot] <= 0 {
			continue
		}
		pools[slot] = append(pools[slot], it)
		present[key] = struct{}{}
		need[slot]--
		added++

		if satisfied(need) {
			break
		}
	}

	if added > 0 {
		b.logger.Debug().Int("added", added).Msg("thin slots backfilled")
		metrics.RecordPoolSizes(pools)
	}
	return added
}

func satisfied(need map[models.Slot]int) bool {
	for _, n := range need {
		if n > 0 {
			return false
		}
	}
	return true
}

// Trim returns a copy of pools with each slot truncated to k items.
func Trim(pools models.CategoryPools, k int) models.CategoryPools {
	out := models.NewCategoryPools()
	for slot, items := range pools {
		if k >= 0 && len(items) > k {
			items = items[:k]
		}
		out[slot] = append([]models.Item{}, items...)
	}
	return out
}
