// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package supervisor provides process supervision for Outfitter using suture v4.

The tree has two layers so that cache maintenance and request serving fail
independently:

	RootSupervisor ("outfitter")
	├── CacheSupervisor ("cache-layer")
	│   └── CacheGCService (when the embedding cache has a disk tier)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Usage from main:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 30*time.Second))
	if disk != nil {
	    tree.AddCacheService(services.NewCacheGCService(disk, 10*time.Minute, 0.5))
	}
	return tree.Serve(ctx)

# Failure Handling

Suture keeps a failure counter per supervisor that decays over FailureDecay
seconds. Past FailureThreshold, restarts wait FailureBackoff. A service that
returns nil is not restarted; one that returns an error is.

Supervisor events go through sutureslog into the slog bridge of the logging
package, so they share the zerolog output.

# Debugging Shutdown

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logging.Warn().Str("service", svc.Name).Msg("service did not stop")
	}
*/
package supervisor
