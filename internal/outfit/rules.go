// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package outfit

import (
	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/textmatch"
)

// ClashRule penalizes an outfit whose Left slot title matches LeftPatterns
// while its Right slot title matches RightPatterns.
type ClashRule struct {
	Name          string
	Left          models.Slot
	LeftPatterns  []string
	Right         models.Slot
	RightPatterns []string
	Penalty       float64
}

// ClashRules is a table of style clashes. Penalties of matching rules add up.
type ClashRules []ClashRule

// DefaultClashRules are the built-in style clashes.
var DefaultClashRules = ClashRules{
	{
		Name:          "winter outerwear with open footwear",
		Left:          models.SlotJacket,
		LeftPatterns:  []string{"parka", "puffer", "snow"},
		Right:         models.SlotFootwear,
		RightPatterns: []string{"sandal", "flip flop"},
		Penalty:       0.8,
	},
	{
		Name:          "dressy top with athletic shoes",
		Left:          models.SlotTop,
		LeftPatterns:  []string{"evening", "silk blouse", "blazer"},
		Right:         models.SlotFootwear,
		RightPatterns: []string{"sneaker", "running"},
		Penalty:       0.4,
	},
	{
		Name:          "athletic bottoms with heels",
		Left:          models.SlotBottom,
		LeftPatterns:  []string{"track", "jogger", "legging"},
		Right:         models.SlotFootwear,
		RightPatterns: []string{"heel", "pump", "stiletto"},
		Penalty:       0.5,
	},
}

// clashMatcher scans each slot title once for the patterns of every rule.
// Rule i's left patterns carry rank 2i and its right patterns rank 2i+1.
type clashMatcher struct {
	rules  ClashRules
	bySlot map[models.Slot]*textmatch.Automaton
}

func (r ClashRules) compile() *clashMatcher {
	patterns := make(map[models.Slot][]textmatch.Pattern)
	for i, rule := range r {
		for _, p := range rule.LeftPatterns {
			patterns[rule.Left] = append(patterns[rule.Left], textmatch.Pattern{Text: models.FoldText(p), Rank: 2 * i})
		}
		for _, p := range rule.RightPatterns {
			patterns[rule.Right] = append(patterns[rule.Right], textmatch.Pattern{Text: models.FoldText(p), Rank: 2*i + 1})
		}
	}
	m := &clashMatcher{rules: r, bySlot: make(map[models.Slot]*textmatch.Automaton, len(patterns))}
	for slot, ps := range patterns {
		m.bySlot[slot] = textmatch.New(ps)
	}
	return m
}

// matched returns the indices of the rules matching the folded titles, in
// table order.
func (m *clashMatcher) matched(folded map[models.Slot]string) []int {
	hits := make([]bool, 2*len(m.rules))
	for slot, ac := range m.bySlot {
		title, ok := folded[slot]
		if !ok {
			continue
		}
		for _, match := range ac.FindAll(title) {
			hits[match.Rank] = true
		}
	}
	var idx []int
	for i := range m.rules {
		if hits[2*i] && hits[2*i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}

// Penalty sums the penalties of every rule matching the folded titles.
func (m *clashMatcher) Penalty(folded map[models.Slot]string) float64 {
	var total float64
	for _, i := range m.matched(folded) {
		total += m.rules[i].Penalty
	}
	return total
}

// Matches returns the names of the rules matching the folded titles.
func (m *clashMatcher) Matches(folded map[models.Slot]string) []string {
	var names []string
	for _, i := range m.matched(folded) {
		names = append(names, m.rules[i].Name)
	}
	return names
}

// slotReuseWeights scale the reuse penalty per slot.
var slotReuseWeights = map[models.Slot]float64{
	models.SlotTop:       0.5,
	models.SlotBottom:    0.45,
	models.SlotJacket:    0.4,
	models.SlotFootwear:  0.25,
	models.SlotAccessory: 0.2,
}

// slotPoolMargins over-fetch candidates for the earlier slots.
var slotPoolMargins = map[models.Slot]int{
	models.SlotTop:    2,
	models.SlotBottom: 2,
	models.SlotJacket: 1,
}
