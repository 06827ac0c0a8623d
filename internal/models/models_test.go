// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestItemKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item Item
		want string
	}{
		{
			name: "web url wins",
			item: Item{Title: "Tee", WebURL: "https://ebay.example/itm/1", ItemID: "v1|1|0", Image: &Image{ImageURL: "https://img/1.jpg"}},
			want: "https://ebay.example/itm/1",
		},
		{
			name: "item id when no web url",
			item: Item{Title: "Tee", ItemID: "v1|1|0", Image: &Image{ImageURL: "https://img/1.jpg"}},
			want: "v1|1|0",
		},
		{
			name: "title and image composite",
			item: Item{Title: "Tee", Image: &Image{ImageURL: "https://img/1.jpg"}},
			want: "Tee-https://img/1.jpg",
		},
		{
			name: "title only",
			item: Item{Title: "Tee"},
			want: "Tee-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPriceAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price *Price
		want  float64
	}{
		{"nil price", nil, 0},
		{"decimal", &Price{Value: "24.99", Currency: "USD"}, 24.99},
		{"padded", &Price{Value: " 10 ", Currency: "USD"}, 10},
		{"garbage", &Price{Value: "call us", Currency: "USD"}, 0},
		{"nan", &Price{Value: "NaN", Currency: "USD"}, 0},
		{"infinite", &Price{Value: "+Inf", Currency: "USD"}, 0},
		{"overflowing", &Price{Value: "1e308", Currency: "USD"}, 0},
		{"negative", &Price{Value: "-5", Currency: "USD"}, 0},
		{"at bound", &Price{Value: "1e12", Currency: "USD"}, MaxPriceAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.price.Amount(); got != tt.want {
				t.Errorf("Amount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithSimilarityCopies(t *testing.T) {
	t.Parallel()

	orig := Item{Title: "Boot"}
	scored := orig.WithSimilarity(0.75)

	if orig.Similarity != nil {
		t.Fatal("WithSimilarity mutated the original item")
	}
	if scored.Similarity == nil || *scored.Similarity != 0.75 {
		t.Errorf("Similarity = %v, want 0.75", scored.Similarity)
	}
}

func TestParseSlot(t *testing.T) {
	t.Parallel()

	for _, slot := range AllSlots {
		got, ok := ParseSlot(" " + string(slot) + " ")
		if !ok || got != slot {
			t.Errorf("ParseSlot(%q) = %q, %v", slot, got, ok)
		}
	}
	if _, ok := ParseSlot("hat"); ok {
		t.Error("ParseSlot(hat) should fail")
	}
	if got, ok := ParseSlot("FOOTWEAR"); !ok || got != SlotFootwear {
		t.Errorf("ParseSlot(FOOTWEAR) = %q, %v", got, ok)
	}
}

func TestAttributeIndex(t *testing.T) {
	t.Parallel()

	carried := Item{Title: "Linen shirt", WebURL: "u1", Palette: PaletteEarth, Vibe: VibeCasual}
	unknown := Item{Title: "Loafer", WebURL: "u2", Vibe: VibeFormal}

	idx := AttributeIndex{"u1": {Palette: PaletteNeutrals}}

	got := idx.Get(carried)
	if got.Palette != PaletteNeutrals {
		t.Errorf("Palette = %q, want %q", got.Palette, PaletteNeutrals)
	}
	if got.Vibe != VibeCasual {
		t.Errorf("Vibe = %q, want fallback %q", got.Vibe, VibeCasual)
	}

	if got := idx.Get(unknown); got.Vibe != VibeFormal || got.Palette != "" {
		t.Errorf("Get(unknown) = %+v, want item-carried attributes", got)
	}
}

func TestCategoryPoolsJSONCarriesAllSlots(t *testing.T) {
	t.Parallel()

	pools := NewCategoryPools()
	pools[SlotTop] = append(pools[SlotTop], Item{Title: "Tee"})

	data, err := json.Marshal(pools)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string][]Item
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded) != SlotCount {
		t.Errorf("decoded %d slots, want %d", len(decoded), SlotCount)
	}
	if pools.Total() != 1 {
		t.Errorf("Total() = %d, want 1", pools.Total())
	}
}
