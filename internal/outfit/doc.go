// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package outfit composes category pools into ranked outfit suggestions.

# Scoring

An outfit (partial or complete) is scored as

	1.2*coverage + 1.0*priceFit + 0.9*aesthetics + 0.8*compatibility + 1.1*variety

where coverage is filled/5*1.5, priceFit penalizes budget overshoot linearly,
aesthetics counts palette and vibe matches per filled item, compatibility
subtracts ClashRules penalties and variety subtracts a per-slot reuse penalty
read from the UsageLedger. These weights fix outfit ordering and must not be
tuned per call.

# Composition

Composer runs one beam search per outfit over the slots in the order
top, bottom, jacket, footwear, accessory. Each slot's pool is cut to
TopKPerCategory plus a small margin for the earlier slots. The best final
state with at least three filled slots is emitted, its items are recorded in
the ledger and, unless AllowReuse is set, excluded from later outfits.
Generation stops at MaxOutfits or at the first search that yields nothing.

A Composer holds no per-call state; every Generate call owns a fresh ledger.
*/
package outfit
