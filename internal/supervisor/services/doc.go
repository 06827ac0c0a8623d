// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package services provides suture.Service wrappers for Outfitter components.

Each wrapper turns a component's own lifecycle into suture's
Serve(ctx) error:

HTTP Server (HTTPServerService):
  - Runs ListenAndServe in a goroutine
  - Calls Shutdown with a bounded timeout when ctx is canceled

Cache GC (CacheGCService):
  - Runs value-log garbage collection on the embedding disk cache on a ticker
  - Counts each pass by result in the embedding cache GC metric

Return values drive restarts: nil means stopped cleanly, an error means
crashed and restart, ctx.Err() means shutdown was requested.
*/
package services
