// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package embedding turns images into fixed-length vectors.

Client talks to an HTTP image-embedding service (a CLIP-style model behind a
JSON endpoint). Every call is rate limited, guarded by a circuit breaker and
bounded by the caller's context; there are no retries.

CachedEmbedder fronts any Embedder with a Cache keyed by model and image URL.
Two Cache implementations are provided and can be stacked with Tiered:

  - MemoryCache: in-process ristretto cache (via eko/gocache) with a TTL
  - BadgerCache: persistent badger store with a TTL, surviving restarts

Uploaded images (byte sources) are never cached.

Wire format:

	POST {url}
	{"image": "https://i.ebayimg.com/..."}   or   {"image": "data:image/jpeg;base64,..."}

	200 {"embedding": [0.012, -0.034, ...]}
*/
package embedding
