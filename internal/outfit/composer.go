// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package outfit

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tomtom215/outfitter/internal/metrics"
	"github.com/tomtom215/outfitter/internal/models"
)

// Composer generates outfits from category pools.
type Composer struct {
	scorer *Scorer
	logger zerolog.Logger
}

// NewComposer creates a composer using DefaultClashRules.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewComposer(logger zerolog.Logger) *Composer {
	return &Composer{
		scorer: NewScorer(nil),
		logger: logger.With().Str("component", "composer").Logger(),
	}
}

// WithScorer returns a copy of the composer using scorer.
func (c *Composer) WithScorer(scorer *Scorer) *Composer {
	cp := *c
	cp.scorer = scorer
	return &cp
}

// GenerateOutfits composes outfits with a default composer.
//
//nolint:gocritic // hugeParam
func GenerateOutfits(pools models.CategoryPools, prefs Preferences, attrs models.AttributeGetter) ([]models.OutfitSuggestion, error) {
	return NewComposer(zerolog.Nop()).Generate(pools, prefs, attrs)
}

// state is one beam entry.
type state struct {
	picks []Pick
	score float64
}

// run is the mutable state of one Generate call.
type run struct {
	prefs  Preferences
	attrs  models.AttributeGetter
	ledger *UsageLedger
	used   map[string]struct{}
	pools  map[models.Slot][]models.Item
}

// Generate runs one beam search per outfit until MaxOutfits outfits are
// emitted or a search finds no outfit with at least three filled slots.
// Zero-valued numeric preferences take their defaults. A nil attrs reads
// labels from the items.
//
//nolint:gocritic // hugeParam
func (c *Composer) Generate(pools models.CategoryPools, prefs Preferences, attrs models.AttributeGetter) ([]models.OutfitSuggestion, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	prefs = prefs.WithDefaults()
	if attrs == nil {
		attrs = models.ItemAttributes
	}

	start := time.Now()
	r := &run{
		prefs:  prefs,
		attrs:  attrs,
		ledger: NewUsageLedger(),
		used:   make(map[string]struct{}),
		pools:  candidatePools(pools, prefs.TopKPerCategory),
	}

	outfits := make([]models.OutfitSuggestion, 0, prefs.MaxOutfits)
	for len(outfits) < prefs.MaxOutfits {
		best, ok := c.search(r)
		if !ok {
			break
		}
		outfits = append(outfits, c.suggestion(best, prefs, len(outfits)+1))

		r.ledger.Record(best.picks)
		if !prefs.AllowReuse {
			for i := range best.picks {
				r.used[best.picks[i].Item.Key()] = struct{}{}
			}
		}
	}

	c.logger.Debug().
		Int("outfits", len(outfits)).
		Int("requested", prefs.MaxOutfits).
		Int("pool_items", pools.Total()).
		Dur("duration", time.Since(start)).
		Msg("outfits generated")
	metrics.RecordOutfitGeneration(outfits, time.Since(start))

	return outfits, nil
}

// candidatePools cuts each slot to topK plus its margin.
func candidatePools(pools models.CategoryPools, topK int) map[models.Slot][]models.Item {
	out := make(map[models.Slot][]models.Item, models.SlotCount)
	for _, slot := range models.AllSlots {
		items := pools[slot]
		if limit := topK + slotPoolMargins[slot]; len(items) > limit {
			items = items[:limit]
		}
		out[slot] = items
	}
	return out
}

// search runs one beam search and returns the best acceptable final state.
func (c *Composer) search(r *run) (state, bool) {
	beam := []state{{}}

	for _, slot := range models.AllSlots {
		candidates := r.available(slot)
		if len(candidates) == 0 {
			// nothing to place here; states carry over with the slot empty
			continue
		}

		next := make([]state, 0, len(beam)*len(candidates))
		for _, s := range beam {
			for i := range candidates {
				if holds(s.picks, candidates[i].Key()) {
					continue
				}
				picks := make([]Pick, len(s.picks), len(s.picks)+1)
				copy(picks, s.picks)
				picks = append(picks, Pick{Slot: slot, Item: candidates[i]})
				next = append(next, state{
					picks: picks,
					score: c.scorer.Score(picks, r.prefs, r.ledger, r.attrs),
				})
			}
		}

		if len(next) == 0 {
			continue
		}
		sort.SliceStable(next, func(i, j int) bool {
			return next[i].score > next[j].score
		})
		if len(next) > r.prefs.BeamWidth {
			next = next[:r.prefs.BeamWidth]
		}
		beam = next
	}

	for _, s := range beam {
		if len(s.picks) >= minFilledSlots && !r.usesExcluded(s.picks) {
			return s, true
		}
	}
	return state{}, false
}

// available returns the slot candidates not excluded by earlier outfits.
func (r *run) available(slot models.Slot) []models.Item {
	pool := r.pools[slot]
	if r.prefs.AllowReuse || len(r.used) == 0 {
		return pool
	}
	out := make([]models.Item, 0, len(pool))
	for i := range pool {
		if _, used := r.used[pool[i].Key()]; !used {
			out = append(out, pool[i])
		}
	}
	return out
}

// holds reports whether picks already contain key. One item may sit in two
// pools but never fills two slots of the same outfit.
func holds(picks []Pick, key string) bool {
	for i := range picks {
		if picks[i].Item.Key() == key {
			return true
		}
	}
	return false
}

func (r *run) usesExcluded(picks []Pick) bool {
	if r.prefs.AllowReuse {
		return false
	}
	for i := range picks {
		if _, used := r.used[picks[i].Item.Key()]; used {
			return true
		}
	}
	return false
}

//nolint:gocritic // hugeParam
func (c *Composer) suggestion(s state, prefs Preferences, n int) models.OutfitSuggestion {
	items := make([]models.Item, len(s.picks))
	slots := make([]models.Slot, len(s.picks))
	titles := make([]string, len(s.picks))
	var total float64
	for i := range s.picks {
		items[i] = s.picks[i].Item
		slots[i] = s.picks[i].Slot
		titles[i] = s.picks[i].Item.Title
		total += s.picks[i].Item.PriceAmount()
	}

	sug := models.OutfitSuggestion{
		Name:        outfitName(prefs, n),
		Description: strings.Join(titles, " + "),
		Items:       items,
		Slots:       slots,
		Score:       s.score,
	}
	if total > 0 {
		sug.TotalPrice = &total
	}
	return sug
}

// outfitName labels an outfit from the target vibe and palette.
//
//nolint:gocritic // hugeParam
func outfitName(prefs Preferences, n int) string {
	caser := cases.Title(language.English)
	var parts []string
	if prefs.TargetVibe != "" {
		parts = append(parts, caser.String(string(prefs.TargetVibe)))
	}
	if prefs.TargetPalette != "" {
		parts = append(parts, caser.String(string(prefs.TargetPalette)))
	}
	parts = append(parts, fmt.Sprintf("Look #%d", n))
	return strings.Join(parts, " ")
}
