// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package search finds candidate items through the eBay Browse API and
// answers eBay's marketplace account-deletion endpoint challenge.
package search
