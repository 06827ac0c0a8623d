// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package outfit

import (
	"math"

	"github.com/tomtom215/outfitter/internal/models"
)

// Sub-score weights.
const (
	WeightCoverage      = 1.2
	WeightPriceFit      = 1.0
	WeightAesthetics    = 0.9
	WeightCompatibility = 0.8
	WeightVariety       = 1.1
)

const (
	coverageScale  = 1.5
	reusePerUse    = 0.3
	minFilledSlots = 3
)

// Pick is an item placed in a slot.
type Pick struct {
	Slot models.Slot `json:"slot" yaml:"slot" validate:"required,oneof=top bottom jacket footwear accessory"`
	Item models.Item `json:"item" yaml:"item"`
}

// ScoreBreakdown holds the unweighted sub-scores and the weighted total.
type ScoreBreakdown struct {
	Coverage      float64  `json:"coverage" yaml:"coverage"`
	PriceFit      float64  `json:"priceFit" yaml:"priceFit"`
	Aesthetics    float64  `json:"aesthetics" yaml:"aesthetics"`
	Compatibility float64  `json:"compatibility" yaml:"compatibility"`
	Variety       float64  `json:"variety" yaml:"variety"`
	TotalPrice    float64  `json:"totalPrice" yaml:"totalPrice"`
	Clashes       []string `json:"clashes,omitempty" yaml:"clashes,omitempty"`
	Total         float64  `json:"total" yaml:"total"`
}

// Scorer scores partial and complete outfits.
type Scorer struct {
	clashes *clashMatcher
}

// NewScorer creates a scorer with the given clash rules.
// Nil rules use DefaultClashRules.
func NewScorer(clashes ClashRules) *Scorer {
	if clashes == nil {
		clashes = DefaultClashRules
	}
	return &Scorer{clashes: clashes.compile()}
}

var defaultScorer = NewScorer(nil)

// Breakdown scores picks with DefaultClashRules.
//
//nolint:gocritic // hugeParam
func Breakdown(picks []Pick, prefs Preferences, ledger *UsageLedger, attrs models.AttributeGetter) ScoreBreakdown {
	return defaultScorer.Breakdown(picks, prefs, ledger, attrs)
}

// Score returns Breakdown(...).Total.
//
//nolint:gocritic // hugeParam
func Score(picks []Pick, prefs Preferences, ledger *UsageLedger, attrs models.AttributeGetter) float64 {
	return defaultScorer.Score(picks, prefs, ledger, attrs)
}

// Score returns the weighted total for picks.
//
//nolint:gocritic // hugeParam
func (s *Scorer) Score(picks []Pick, prefs Preferences, ledger *UsageLedger, attrs models.AttributeGetter) float64 {
	return s.breakdown(picks, prefs, ledger, attrs, false).Total
}

// Breakdown returns every sub-score for picks. A nil ledger means no prior
// usage; a nil attrs reads labels from the items.
//
//nolint:gocritic // hugeParam
func (s *Scorer) Breakdown(picks []Pick, prefs Preferences, ledger *UsageLedger, attrs models.AttributeGetter) ScoreBreakdown {
	return s.breakdown(picks, prefs, ledger, attrs, true)
}

//nolint:gocritic // hugeParam
func (s *Scorer) breakdown(picks []Pick, prefs Preferences, ledger *UsageLedger, attrs models.AttributeGetter, withClashes bool) ScoreBreakdown {
	if attrs == nil {
		attrs = models.ItemAttributes
	}

	var b ScoreBreakdown
	filled := len(picks)

	b.Coverage = float64(filled) / float64(models.SlotCount) * coverageScale

	for i := range picks {
		b.TotalPrice += picks[i].Item.PriceAmount()
	}
	b.PriceFit = priceFit(b.TotalPrice, prefs)

	b.Aesthetics = aesthetics(picks, prefs, attrs)

	folded := make(map[models.Slot]string, filled)
	for i := range picks {
		folded[picks[i].Slot] = models.FoldText(picks[i].Item.Title)
	}
	b.Compatibility = 1 - math.Min(1, s.clashes.Penalty(folded))
	if withClashes {
		b.Clashes = s.clashes.Matches(folded)
	}

	var reuse float64
	for i := range picks {
		uses := float64(ledger.Count(picks[i].Item.Key()))
		reuse += math.Min(1, uses*reusePerUse) * slotReuseWeights[picks[i].Slot]
	}
	b.Variety = 1 - math.Min(1, reuse)

	b.Total = WeightCoverage*b.Coverage +
		WeightPriceFit*b.PriceFit +
		WeightAesthetics*b.Aesthetics +
		WeightCompatibility*b.Compatibility +
		WeightVariety*b.Variety
	return b
}

//nolint:gocritic // hugeParam
func priceFit(total float64, prefs Preferences) float64 {
	if !prefs.HasBudget() || total <= prefs.BudgetMax {
		return 1
	}
	over := (total - prefs.BudgetMax) / prefs.BudgetMax
	return math.Max(0, 1-math.Min(1, over))
}

//nolint:gocritic // hugeParam
func aesthetics(picks []Pick, prefs Preferences, attrs models.AttributeGetter) float64 {
	if len(picks) == 0 || (prefs.TargetPalette == "" && prefs.TargetVibe == "") {
		return 0
	}
	matches := 0
	for i := range picks {
		a := attrs(picks[i].Item)
		if prefs.TargetPalette != "" && a.Palette == prefs.TargetPalette {
			matches++
		}
		if prefs.TargetVibe != "" && a.Vibe == prefs.TargetVibe {
			matches++
		}
	}
	return float64(matches) / float64(len(picks))
}
