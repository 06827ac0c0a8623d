// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package models defines the data structures shared across Outfitter.

Key Components:

  - Item: a candidate garment returned by the item-search service
  - Slot: one of the five fixed garment roles (top, bottom, jacket, footwear, accessory)
  - Attributes: aesthetic labels (palette, vibe) produced by the classifier
  - CategoryPools: per-slot candidate lists in relevance order
  - OutfitSuggestion: one composed outfit emitted by the composer
  - RerankDiagnostics: ranking-quality report from the visual reranker

Items are treated as values. Components that annotate an item (for example the
reranker setting its similarity) return a copy rather than mutating the input.

Item identity is derived by Item.Key, which is the only identity used for
deduplication, reuse tracking and attribute lookup:

	key := item.Key() // web URL, else item id, else "title-imageURL"
*/
package models
