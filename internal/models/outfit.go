// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package models

// CategoryPools maps each slot to its candidates, most relevant first.
// No slot list contains two items with the same Key.
type CategoryPools map[Slot][]Item

// NewCategoryPools returns pools with an empty list for every slot, so the
// JSON form always carries all five keys.
func NewCategoryPools() CategoryPools {
	pools := make(CategoryPools, SlotCount)
	for _, slot := range AllSlots {
		pools[slot] = []Item{}
	}
	return pools
}

// Total returns the number of items across all slots.
func (p CategoryPools) Total() int {
	n := 0
	for _, items := range p {
		n += len(items)
	}
	return n
}

// Counts returns the per-slot item counts.
func (p CategoryPools) Counts() map[Slot]int {
	counts := make(map[Slot]int, SlotCount)
	for _, slot := range AllSlots {
		counts[slot] = len(p[slot])
	}
	return counts
}

// OutfitSuggestion is one composed outfit.
// Items and Slots are parallel and follow composition order.
type OutfitSuggestion struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Items       []Item   `json:"items" yaml:"items"`
	Slots       []Slot   `json:"slots" yaml:"slots"`
	TotalPrice  *float64 `json:"totalPrice,omitempty" yaml:"totalPrice,omitempty"`
	Score       float64  `json:"score" yaml:"score"`
}

// ScoreStats summarizes the similarity scores of a rerank.
type ScoreStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// RerankDiagnostics reports how a visual rerank went.
// Similarity statistics cover only the successfully embedded candidates.
// FailedURLs lists every dropped candidate in input order; candidates with no
// image URL appear as "" and are also counted in MissingImages.
type RerankDiagnostics struct {
	TotalItems      int        `json:"totalItems"`
	ValidReference  bool       `json:"validReference"`
	ValidEmbeddings int        `json:"validEmbeddings"`
	MissingImages   int        `json:"missingImages"`
	FailedURLs      []string   `json:"failedUrls"`
	ScoreStats      ScoreStats `json:"scoreStats"`
	PositionChanges int        `json:"positionChanges"`
	Effectiveness   float64    `json:"rerankEffectiveness"`
}
