// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package classify labels garments with a slot, a color palette and a
// formality using a vision model.
//
// Model output is free text. ParseModelText accepts a JSON object first and
// falls back to comma, pipe, dash or newline separated labels, normalizing
// loose wording ("earthy tones", "streetwear") onto the closed label sets.
// Any label may be missing; callers fall back to title keywords for the slot.
package classify
