// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package pools groups classified items into the five outfit slots.

Items arrive in relevance order (typically after visual reranking) and are
appended to their slot in that order. The classifier's slot always wins; when
it is absent the title is matched against an ordered keyword rule table and
the first matching rule decides, defaulting to top.

Backfill tops up thin slots (top, bottom and jacket by default) from items
that were never classified, using the same keyword rules but without the
default, so an unmatched title is never forced into a slot.
*/
package pools
