// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package pools

import (
	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/textmatch"
)

// KeywordRule assigns Slot to titles containing any of Patterns.
type KeywordRule struct {
	Slot     models.Slot
	Patterns []string
}

// KeywordRules is an ordered rule table; the first match wins.
type KeywordRules []KeywordRule

// DefaultRules is the title keyword table used when no classifier slot exists.
var DefaultRules = KeywordRules{
	{models.SlotFootwear, []string{"shoe", "sneaker", "boot", "heel", "sandal", "loafer", "cleat", "pump", "mule"}},
	{models.SlotJacket, []string{"jacket", "coat", "parka", "blazer", "trench", "windbreaker", "puffer"}},
	{models.SlotBottom, []string{"jean", "pant", "trouser", "chino", "legging", "short", "skirt", "cargo", "culotte"}},
	{models.SlotTop, []string{"shirt", "tee", "t-shirt", "blouse", "sweater", "hoodie", "crewneck", "cardigan", "tank", "top", "polo", "dress"}},
	{models.SlotAccessory, []string{"bag", "belt", "hat", "cap", "scarf", "sunglass", "watch", "ring", "necklace", "earring", "bracelet", "wallet"}},
}

// Compile builds a Matcher for the rules.
func (r KeywordRules) Compile() *Matcher {
	var patterns []textmatch.Pattern
	for rank, rule := range r {
		for _, p := range rule.Patterns {
			patterns = append(patterns, textmatch.Pattern{Text: p, Rank: rank})
		}
	}
	return &Matcher{rules: r, ac: textmatch.New(patterns)}
}

// Guess compiles the rules and guesses once. Use Compile for repeated calls.
func (r KeywordRules) Guess(title string) (models.Slot, bool) {
	return r.Compile().Guess(title)
}

// Matcher is a compiled KeywordRules. All patterns are matched in one pass
// over the title; the earliest rule with any hit wins.
type Matcher struct {
	rules KeywordRules
	ac    *textmatch.Automaton
}

// Guess returns the slot of the first rule matching title.
func (m *Matcher) Guess(title string) (models.Slot, bool) {
	folded := models.FoldText(title)
	if folded == "" {
		return "", false
	}
	match, ok := m.ac.Best(folded)
	if !ok {
		return "", false
	}
	return m.rules[match.Rank].Slot, true
}

// Fallback is Guess with top as the default.
func (m *Matcher) Fallback(title string) models.Slot {
	if slot, ok := m.Guess(title); ok {
		return slot
	}
	return models.SlotTop
}

var defaultMatcher = DefaultRules.Compile()

// GuessSlot applies DefaultRules.
func GuessSlot(title string) (models.Slot, bool) {
	return defaultMatcher.Guess(title)
}

// FallbackSlot applies DefaultRules with the top default.
func FallbackSlot(title string) models.Slot {
	return defaultMatcher.Fallback(title)
}
