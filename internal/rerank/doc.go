// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package rerank reorders candidate items by visual similarity to a reference image.

The reranker embeds the reference image once, then embeds every candidate
image concurrently (bounded by Config.Concurrency, each call under its own
timeout) and stable-sorts the successfully embedded candidates by cosine
similarity, highest first.

Failure classes:

  - Reference embedding failure aborts the call with ErrReferenceEmbeddingFailed.
  - A candidate whose image cannot be embedded is dropped from the ranking and
    its image URL is recorded in RerankDiagnostics.FailedURLs.
  - A candidate without an image URL is dropped, recorded in FailedURLs as an
    empty entry and counted in MissingImages.
  - A candidate vector whose length differs from the reference vector aborts
    the call: the embedding service is misconfigured, not the item.
  - When no candidate embeds, the input list is returned unchanged.

Position changes are tracked by each candidate's original index, so duplicate
titles or URLs never confuse the count.
*/
package rerank
