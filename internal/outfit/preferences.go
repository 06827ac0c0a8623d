// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package outfit

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/outfitter/internal/models"
)

// ErrInvalidPreferences is returned when preferences fail validation.
var ErrInvalidPreferences = errors.New("invalid outfit preferences")

// Preferences steer outfit generation.
type Preferences struct {
	// TargetPalette rewards items in this color family. Optional.
	TargetPalette models.Palette `json:"targetPalette,omitempty" yaml:"targetPalette,omitempty" koanf:"target_palette" validate:"omitempty,oneof=neutrals brights earth pastels"`

	// TargetVibe rewards items of this formality. Optional.
	TargetVibe models.Vibe `json:"targetVibe,omitempty" yaml:"targetVibe,omitempty" koanf:"target_vibe" validate:"omitempty,oneof=formal casual athletic"`

	// BudgetMax caps total outfit price. 0 means no budget.
	BudgetMax float64 `json:"budgetMax,omitempty" yaml:"budgetMax,omitempty" koanf:"budget_max" validate:"gte=0"`

	// MaxOutfits is the number of outfits to generate.
	// Default: 8.
	MaxOutfits int `json:"maxOutfits,omitempty" yaml:"maxOutfits,omitempty" koanf:"max_outfits" validate:"gte=0,lte=100"`

	// TopKPerCategory limits candidates per slot.
	// Default: 6.
	TopKPerCategory int `json:"topKPerCategory,omitempty" yaml:"topKPerCategory,omitempty" koanf:"top_k_per_category" validate:"gte=0,lte=100"`

	// BeamWidth is the number of partial outfits kept per slot.
	// Default: 40.
	BeamWidth int `json:"beamWidth,omitempty" yaml:"beamWidth,omitempty" koanf:"beam_width" validate:"gte=0,lte=10000"`

	// AllowReuse lets one item appear in several outfits.
	// Default: false.
	AllowReuse bool `json:"allowReuse,omitempty" yaml:"allowReuse,omitempty" koanf:"allow_reuse"`
}

// DefaultPreferences returns the default preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		MaxOutfits:      8,
		TopKPerCategory: 6,
		BeamWidth:       40,
	}
}

// WithDefaults fills zero numeric fields from DefaultPreferences.
//
//nolint:gocritic // hugeParam
func (p Preferences) WithDefaults() Preferences {
	def := DefaultPreferences()
	if p.MaxOutfits == 0 {
		p.MaxOutfits = def.MaxOutfits
	}
	if p.TopKPerCategory == 0 {
		p.TopKPerCategory = def.TopKPerCategory
	}
	if p.BeamWidth == 0 {
		p.BeamWidth = def.BeamWidth
	}
	return p
}

// HasBudget reports whether a budget is set.
//
//nolint:gocritic // hugeParam
func (p Preferences) HasBudget() bool {
	return p.BudgetMax > 0
}

// Validate checks the preferences.
//
//nolint:gocritic // hugeParam
func (p Preferences) Validate() error {
	if p.TargetPalette != "" {
		if _, ok := models.ParsePalette(string(p.TargetPalette)); !ok {
			return fmt.Errorf("%w: unknown palette %q", ErrInvalidPreferences, p.TargetPalette)
		}
	}
	if p.TargetVibe != "" {
		if _, ok := models.ParseVibe(string(p.TargetVibe)); !ok {
			return fmt.Errorf("%w: unknown vibe %q", ErrInvalidPreferences, p.TargetVibe)
		}
	}
	if p.BudgetMax < 0 || math.IsNaN(p.BudgetMax) || math.IsInf(p.BudgetMax, 0) {
		return fmt.Errorf("%w: budgetMax must be a non-negative number", ErrInvalidPreferences)
	}
	if p.MaxOutfits < 0 || p.TopKPerCategory < 0 || p.BeamWidth < 0 {
		return fmt.Errorf("%w: maxOutfits, topKPerCategory and beamWidth must be positive", ErrInvalidPreferences)
	}
	return nil
}
