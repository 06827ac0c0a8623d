// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package models

import "strings"

// Slot is one of the five fixed garment roles.
type Slot string

const (
	SlotTop       Slot = "top"
	SlotBottom    Slot = "bottom"
	SlotJacket    Slot = "jacket"
	SlotFootwear  Slot = "footwear"
	SlotAccessory Slot = "accessory"
)

// AllSlots lists the slots in composition order.
var AllSlots = []Slot{SlotTop, SlotBottom, SlotJacket, SlotFootwear, SlotAccessory}

// SlotCount is the number of slots in a complete outfit.
const SlotCount = 5

// ParseSlot normalizes s and reports whether it names a slot.
func ParseSlot(s string) (Slot, bool) {
	slot := Slot(strings.ToLower(strings.TrimSpace(s)))
	return slot, slot.Valid()
}

// Valid reports whether s is one of the five slots.
func (s Slot) Valid() bool {
	switch s {
	case SlotTop, SlotBottom, SlotJacket, SlotFootwear, SlotAccessory:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (s Slot) String() string {
	return string(s)
}

// Palette is a coarse color family.
type Palette string

const (
	PaletteNeutrals Palette = "neutrals"
	PaletteBrights  Palette = "brights"
	PaletteEarth    Palette = "earth"
	PalettePastels  Palette = "pastels"
)

// ParsePalette reports whether s is an exact palette label.
func ParsePalette(s string) (Palette, bool) {
	p := Palette(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PaletteNeutrals, PaletteBrights, PaletteEarth, PalettePastels:
		return p, true
	}
	return "", false
}

// Vibe is a formality level.
type Vibe string

const (
	VibeFormal   Vibe = "formal"
	VibeCasual   Vibe = "casual"
	VibeAthletic Vibe = "athletic"
)

// ParseVibe reports whether s is an exact vibe label.
func ParseVibe(s string) (Vibe, bool) {
	v := Vibe(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case VibeFormal, VibeCasual, VibeAthletic:
		return v, true
	}
	return "", false
}
