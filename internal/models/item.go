// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package models

import (
	"math"
	"strconv"
	"strings"
)

// Price is a listing price as reported by the item-search service.
// Value is kept as the provider's string so no precision is lost in transit.
type Price struct {
	Value    string `json:"value" yaml:"value"`
	Currency string `json:"currency" yaml:"currency"`
}

// MaxPriceAmount bounds a single price so outfit totals stay finite.
const MaxPriceAmount = 1e12

// Amount parses Value. Missing, unparsable, negative or out-of-range values
// count as 0.
func (p *Price) Amount() float64 {
	if p == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > MaxPriceAmount {
		return 0
	}
	return v
}

// Image references a listing image.
type Image struct {
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
}

// Item is a candidate garment.
type Item struct {
	Title  string `json:"title" yaml:"title"`
	Price  *Price `json:"price,omitempty" yaml:"price,omitempty"`
	Image  *Image `json:"image,omitempty" yaml:"image,omitempty"`
	WebURL string `json:"webUrl,omitempty" yaml:"webUrl,omitempty"`
	ItemID string `json:"itemId,omitempty" yaml:"itemId,omitempty"`

	// Similarity is set by the visual reranker.
	Similarity *float64 `json:"clipSimilarity,omitempty" yaml:"clipSimilarity,omitempty"`

	// Palette and Vibe are optional aesthetic labels carried with the item.
	Palette Palette `json:"palette,omitempty" yaml:"palette,omitempty"`
	Vibe    Vibe    `json:"vibe,omitempty" yaml:"vibe,omitempty"`
}

// Key returns the canonical identifier of the item: the web URL, else the
// external item id, else the title and image URL joined with "-".
//
//nolint:gocritic // hugeParam: Item is passed by value throughout
func (it Item) Key() string {
	if it.WebURL != "" {
		return it.WebURL
	}
	if it.ItemID != "" {
		return it.ItemID
	}
	return it.Title + "-" + it.ImageURL()
}

// ImageURL returns the image reference or "" when the item has none.
//
//nolint:gocritic // hugeParam
func (it Item) ImageURL() string {
	if it.Image == nil {
		return ""
	}
	return strings.TrimSpace(it.Image.ImageURL)
}

// PriceAmount returns the numeric price, 0 when absent.
//
//nolint:gocritic // hugeParam
func (it Item) PriceAmount() float64 {
	return it.Price.Amount()
}

// WithSimilarity returns a copy of the item carrying the given similarity.
//
//nolint:gocritic // hugeParam
func (it Item) WithSimilarity(score float64) Item {
	s := score
	it.Similarity = &s
	return it
}

// Attributes are the aesthetic labels used by outfit scoring.
type Attributes struct {
	Palette Palette `json:"palette,omitempty" yaml:"palette,omitempty"`
	Vibe    Vibe    `json:"vibe,omitempty" yaml:"vibe,omitempty"`
}

// AttributeGetter maps an item to its aesthetic attributes.
type AttributeGetter func(Item) Attributes

// ItemAttributes is the default AttributeGetter. It reads the labels carried on the item itself.
//
//nolint:gocritic // hugeParam
func ItemAttributes(it Item) Attributes {
	return Attributes{Palette: it.Palette, Vibe: it.Vibe}
}

// AttributeIndex is an AttributeGetter backed by a key-indexed map, falling
// back to the labels carried on the item.
type AttributeIndex map[string]Attributes

// Get implements AttributeGetter.
//
//nolint:gocritic // hugeParam
func (idx AttributeIndex) Get(it Item) Attributes {
	attrs, ok := idx[it.Key()]
	if !ok {
		return ItemAttributes(it)
	}
	if attrs.Palette == "" {
		attrs.Palette = it.Palette
	}
	if attrs.Vibe == "" {
		attrs.Vibe = it.Vibe
	}
	return attrs
}
