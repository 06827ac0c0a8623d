// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package outfit

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/models"
)

func poolsOf(slots map[models.Slot][]models.Item) models.CategoryPools {
	p := models.NewCategoryPools()
	for slot, items := range slots {
		p[slot] = items
	}
	return p
}

func numbered(prefix string, n int, price string) []models.Item {
	items := make([]models.Item, n)
	for i := range items {
		items[i] = priced(fmt.Sprintf("%s %d", prefix, i+1), fmt.Sprintf("%s-%d", prefix, i+1), price)
	}
	return items
}

func TestGenerateSingleOutfit(t *testing.T) {
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:      {priced("T1", "t1", "20")},
		models.SlotBottom:   {priced("B1", "b1", "30")},
		models.SlotFootwear: {priced("F1", "f1", "25")},
	})

	outfits, err := GenerateOutfits(pools, Preferences{MaxOutfits: 1}, nil)
	if err != nil {
		t.Fatalf("GenerateOutfits() error = %v", err)
	}
	if len(outfits) != 1 {
		t.Fatalf("len(outfits) = %d, want 1", len(outfits))
	}

	o := outfits[0]
	if len(o.Items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(o.Items))
	}
	wantSlots := []models.Slot{models.SlotTop, models.SlotBottom, models.SlotFootwear}
	for i, slot := range wantSlots {
		if o.Slots[i] != slot {
			t.Errorf("slots[%d] = %s, want %s", i, o.Slots[i], slot)
		}
	}
	if o.TotalPrice == nil || !approx(*o.TotalPrice, 75) {
		t.Errorf("TotalPrice = %v, want 75", o.TotalPrice)
	}
	if o.Description != "T1 + B1 + F1" {
		t.Errorf("Description = %q, want %q", o.Description, "T1 + B1 + F1")
	}
	if o.Name != "Look #1" {
		t.Errorf("Name = %q, want %q", o.Name, "Look #1")
	}
	if !approx(o.Score, 1.2*0.9+1+0.8+1.1) {
		t.Errorf("Score = %v, want %v", o.Score, 1.2*0.9+1+0.8+1.1)
	}
}

func TestGenerateHugePricesKeepTotalEncodable(t *testing.T) {
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:      {priced("T1", "t1", "1e308")},
		models.SlotBottom:   {priced("B1", "b1", "1e308")},
		models.SlotFootwear: {priced("F1", "f1", "1")},
	})

	outfits, err := GenerateOutfits(pools, Preferences{MaxOutfits: 1}, nil)
	if err != nil {
		t.Fatalf("GenerateOutfits() error = %v", err)
	}
	if len(outfits) != 1 {
		t.Fatalf("len(outfits) = %d, want 1", len(outfits))
	}
	total := outfits[0].TotalPrice
	if total == nil || math.IsInf(*total, 0) || !approx(*total, 1) {
		t.Errorf("TotalPrice = %v, want 1 with out-of-range prices ignored", total)
	}
	if _, err := json.Marshal(outfits); err != nil {
		t.Errorf("json.Marshal(outfits) error = %v", err)
	}
}

func TestGenerateNeedsThreeSlots(t *testing.T) {
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:    {priced("T1", "t1", ""), priced("T2", "t2", "")},
		models.SlotBottom: {priced("Bo1", "bo1", "")},
	})

	outfits, err := GenerateOutfits(pools, Preferences{MaxOutfits: 2}, nil)
	if err != nil {
		t.Fatalf("GenerateOutfits() error = %v", err)
	}
	if len(outfits) != 0 {
		t.Errorf("len(outfits) = %d, want 0", len(outfits))
	}
}

func TestGenerateEmptyPools(t *testing.T) {
	tests := []struct {
		name  string
		pools models.CategoryPools
	}{
		{"nil", nil},
		{"all slots empty", models.NewCategoryPools()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outfits, err := GenerateOutfits(tt.pools, DefaultPreferences(), nil)
			if err != nil {
				t.Fatalf("GenerateOutfits() error = %v", err)
			}
			if len(outfits) != 0 {
				t.Errorf("len(outfits) = %d, want 0", len(outfits))
			}
		})
	}
}

func TestGenerateNoReuse(t *testing.T) {
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:       numbered("top", 4, "10"),
		models.SlotBottom:    numbered("bottom", 3, "10"),
		models.SlotJacket:    numbered("jacket", 2, "10"),
		models.SlotFootwear:  numbered("shoe", 3, "10"),
		models.SlotAccessory: numbered("bag", 1, "10"),
	})

	outfits, err := GenerateOutfits(pools, Preferences{MaxOutfits: 8}, nil)
	if err != nil {
		t.Fatalf("GenerateOutfits() error = %v", err)
	}
	// bottoms and footwear run out after three outfits
	if len(outfits) != 3 {
		t.Fatalf("len(outfits) = %d, want 3", len(outfits))
	}

	seen := make(map[string]int)
	for i, o := range outfits {
		if len(o.Items) < 3 {
			t.Errorf("outfit %d has %d items, want >= 3", i, len(o.Items))
		}
		for _, it := range o.Items {
			if prev, dup := seen[it.Key()]; dup {
				t.Errorf("item %s used in outfits %d and %d", it.Key(), prev, i)
			}
			seen[it.Key()] = i
		}
	}

	if got := len(outfits[0].Items); got != 5 {
		t.Errorf("first outfit has %d items, want all 5 slots", got)
	}
}

func TestGenerateAllowReuse(t *testing.T) {
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:      {priced("T1", "t1", "")},
		models.SlotBottom:   {priced("B1", "b1", "")},
		models.SlotFootwear: {priced("F1", "f1", "")},
	})

	outfits, err := GenerateOutfits(pools, Preferences{MaxOutfits: 3, AllowReuse: true}, nil)
	if err != nil {
		t.Fatalf("GenerateOutfits() error = %v", err)
	}
	if len(outfits) != 3 {
		t.Fatalf("len(outfits) = %d, want 3", len(outfits))
	}
	if outfits[0].TotalPrice != nil {
		t.Errorf("TotalPrice = %v, want nil when no item is priced", *outfits[0].TotalPrice)
	}
	// the reuse penalty lowers each repeat
	for i := 1; i < len(outfits); i++ {
		if outfits[i].Score >= outfits[i-1].Score {
			t.Errorf("outfit %d score %v not below outfit %d score %v", i, outfits[i].Score, i-1, outfits[i-1].Score)
		}
	}
}

func TestGenerateReusePenaltyPrefersFreshItems(t *testing.T) {
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:      {priced("T1", "t1", ""), priced("T2", "t2", "")},
		models.SlotBottom:   {priced("B1", "b1", "")},
		models.SlotFootwear: {priced("F1", "f1", "")},
	})

	outfits, err := GenerateOutfits(pools, Preferences{MaxOutfits: 2, AllowReuse: true}, nil)
	if err != nil {
		t.Fatalf("GenerateOutfits() error = %v", err)
	}
	if len(outfits) != 2 {
		t.Fatalf("len(outfits) = %d, want 2", len(outfits))
	}
	if outfits[0].Items[0].Key() != "t1" || outfits[1].Items[0].Key() != "t2" {
		t.Errorf("tops = %s, %s; want t1 then t2", outfits[0].Items[0].Key(), outfits[1].Items[0].Key())
	}
}

func TestGenerateBudgetBelowCheapest(t *testing.T) {
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:      numbered("top", 3, "100"),
		models.SlotBottom:   numbered("bottom", 3, "100"),
		models.SlotFootwear: numbered("shoe", 3, "100"),
	})

	outfits, err := GenerateOutfits(pools, Preferences{BudgetMax: 5, MaxOutfits: 8}, nil)
	if err != nil {
		t.Fatalf("GenerateOutfits() error = %v", err)
	}
	if len(outfits) > 3 {
		t.Errorf("len(outfits) = %d, want at most 3", len(outfits))
	}
	for i, o := range outfits {
		if len(o.Items) < 3 {
			t.Errorf("outfit %d has %d items, want >= 3", i, len(o.Items))
		}
	}
}

func TestGeneratePrefersTargetAesthetics(t *testing.T) {
	bright := priced("Bright Tee", "t-bright", "")
	bright.Palette = models.PaletteBrights
	neutral := priced("Grey Tee", "t-neutral", "")
	neutral.Palette = models.PaletteNeutrals

	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:      {bright, neutral},
		models.SlotBottom:   {priced("B1", "b1", "")},
		models.SlotFootwear: {priced("F1", "f1", "")},
	})

	prefs := Preferences{MaxOutfits: 1, TargetPalette: models.PaletteNeutrals, TargetVibe: models.VibeCasual}
	outfits, err := GenerateOutfits(pools, prefs, nil)
	if err != nil {
		t.Fatalf("GenerateOutfits() error = %v", err)
	}
	if len(outfits) != 1 {
		t.Fatalf("len(outfits) = %d, want 1", len(outfits))
	}
	if got := outfits[0].Items[0].Key(); got != "t-neutral" {
		t.Errorf("top = %s, want t-neutral", got)
	}
	if outfits[0].Name != "Casual Neutrals Look #1" {
		t.Errorf("Name = %q, want %q", outfits[0].Name, "Casual Neutrals Look #1")
	}
}

func TestGenerateAvoidsClashes(t *testing.T) {
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:      {priced("Tee", "t1", "")},
		models.SlotBottom:   {priced("Jeans", "b1", "")},
		models.SlotJacket:   {priced("Puffer Parka", "j1", ""), priced("Denim Jacket", "j2", "")},
		models.SlotFootwear: {priced("Flip Flop Sandals", "f1", "")},
	})

	outfits, err := GenerateOutfits(pools, Preferences{MaxOutfits: 1}, nil)
	if err != nil {
		t.Fatalf("GenerateOutfits() error = %v", err)
	}
	if len(outfits) != 1 {
		t.Fatalf("len(outfits) = %d, want 1", len(outfits))
	}
	for _, it := range outfits[0].Items {
		if it.Key() == "j1" {
			t.Error("outfit pairs the parka with sandals")
		}
	}
}

func TestGenerateAttributeGetter(t *testing.T) {
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:      {priced("A", "ta", ""), priced("B", "tb", "")},
		models.SlotBottom:   {priced("B1", "b1", "")},
		models.SlotFootwear: {priced("F1", "f1", "")},
	})
	attrs := models.AttributeIndex{"tb": {Vibe: models.VibeFormal}}

	outfits, err := GenerateOutfits(pools, Preferences{MaxOutfits: 1, TargetVibe: models.VibeFormal}, attrs.Get)
	if err != nil {
		t.Fatalf("GenerateOutfits() error = %v", err)
	}
	if len(outfits) != 1 || outfits[0].Items[0].Key() != "tb" {
		t.Errorf("outfits = %+v, want top tb chosen through the getter", outfits)
	}
}

func TestGenerateSameItemInTwoPools(t *testing.T) {
	scarf := priced("Silk Scarf", "x", "")
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:       {scarf},
		models.SlotBottom:    {priced("B1", "b1", "")},
		models.SlotFootwear:  {priced("F1", "f1", "")},
		models.SlotAccessory: {scarf},
	})

	outfits, err := GenerateOutfits(pools, Preferences{MaxOutfits: 1}, nil)
	if err != nil {
		t.Fatalf("GenerateOutfits() error = %v", err)
	}
	if len(outfits) != 1 {
		t.Fatalf("len(outfits) = %d, want 1", len(outfits))
	}
	count := 0
	for _, it := range outfits[0].Items {
		if it.Key() == "x" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("scarf appears %d times, want 1", count)
	}
}

func TestGenerateInvalidPreferences(t *testing.T) {
	_, err := GenerateOutfits(models.NewCategoryPools(), Preferences{TargetPalette: "plaid"}, nil)
	if !errors.Is(err, ErrInvalidPreferences) {
		t.Errorf("GenerateOutfits() error = %v, want ErrInvalidPreferences", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:      numbered("top", 5, "12"),
		models.SlotBottom:   numbered("bottom", 5, "20"),
		models.SlotJacket:   numbered("jacket", 5, "40"),
		models.SlotFootwear: numbered("shoe", 5, "30"),
	})
	c := NewComposer(zerolog.Nop())

	first, err := c.Generate(pools, Preferences{BeamWidth: 3}, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := c.Generate(pools, Preferences{BeamWidth: 3}, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Description != second[i].Description {
			t.Errorf("outfit %d differs: %q vs %q", i, first[i].Description, second[i].Description)
		}
	}
}

func TestCandidatePoolsMargins(t *testing.T) {
	pools := poolsOf(map[models.Slot][]models.Item{
		models.SlotTop:       numbered("top", 10, ""),
		models.SlotBottom:    numbered("bottom", 10, ""),
		models.SlotJacket:    numbered("jacket", 10, ""),
		models.SlotFootwear:  numbered("shoe", 10, ""),
		models.SlotAccessory: numbered("bag", 10, ""),
	})

	got := candidatePools(pools, 2)
	want := map[models.Slot]int{
		models.SlotTop:       4,
		models.SlotBottom:    4,
		models.SlotJacket:    3,
		models.SlotFootwear:  2,
		models.SlotAccessory: 2,
	}
	for slot, n := range want {
		if len(got[slot]) != n {
			t.Errorf("len(%s) = %d, want %d", slot, len(got[slot]), n)
		}
	}
}

func TestUsageLedger(t *testing.T) {
	l := NewUsageLedger()
	picks := []Pick{{Slot: models.SlotTop, Item: priced("T1", "t1", "")}}
	l.Record(picks)
	l.Record([]Pick{{Slot: models.SlotAccessory, Item: priced("T1", "t1", "")}})

	u, ok := l.Get("t1")
	if !ok || u.Count != 2 || u.LastSlot != models.SlotAccessory {
		t.Errorf("Get(t1) = %+v, %v; want count 2, last slot accessory", u, ok)
	}
	if l.Count("missing") != 0 {
		t.Error("Count(missing) != 0")
	}

	var nilLedger *UsageLedger
	nilLedger.Set("t1", Usage{Count: 3})
	nilLedger.Record(picks)
	if nilLedger.Count("t1") != 0 || nilLedger.Len() != 0 {
		t.Error("nil ledger should count nothing")
	}

	var zero UsageLedger
	zero.Set("t1", Usage{Count: 3, LastSlot: models.SlotTop})
	zero.Record(picks)
	if zero.Count("t1") != 4 || zero.Len() != 1 {
		t.Errorf("zero ledger Count(t1) = %d Len = %d, want 4 and 1", zero.Count("t1"), zero.Len())
	}
}
