// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/tomtom215/outfitter/docs" // registers the swagger spec
	"github.com/tomtom215/outfitter/internal/api"
	"github.com/tomtom215/outfitter/internal/auth"
	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/supervisor"
	"github.com/tomtom215/outfitter/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "outfitter",
		Version:   version,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("auth_mode", cfg.Security.AuthMode).
		Bool("reranker", cfg.Embedding.Enabled()).
		Bool("classifier", cfg.Classifier.Enabled()).
		Bool("search", cfg.Search.Enabled()).
		Msg("Starting Outfitter")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	comps, err := buildComponents(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize components")
	}
	defer comps.Close()

	authMW, err := buildAuth(cfg)
	if err != nil {
		comps.Close()
		logging.Fatal().Err(err).Msg("Failed to initialize authentication")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED")
	}

	handler := api.NewHandler(api.Dependencies{
		Reranker:         comps.reranker,
		Classifier:       comps.classifier,
		Extractor:        comps.extractor,
		Searcher:         comps.searcher,
		Stylist:          comps.stylist,
		Builder:          comps.builder,
		Composer:         comps.composer,
		Defaults:         defaultPreferences(cfg),
		VerifyToken:      cfg.Search.VerifyToken,
		DeletionEndpoint: cfg.Search.DeletionEndpoint,
		MaxBodyBytes:     cfg.Server.MaxBodyBytes,
		Version:          version,
	})
	chiMW := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSAllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})
	router := api.NewRouter(handler, authMW, chiMW)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Bridges zerolog to slog for sutureslog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		comps.Close()
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if comps.diskCache != nil {
		tree.AddCacheService(services.NewCacheGCService(comps.diskCache, cfg.Embedding.GCInterval, cfg.Embedding.GCDiscardRatio))
		logging.Info().Dur("interval", cfg.Embedding.GCInterval).Msg("Embedding cache GC service added")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	logging.Info().Msg("Outfitter stopped")
}

func buildAuth(cfg *config.Config) (*auth.Middleware, error) {
	if cfg.Security.AuthMode != auth.ModeJWT {
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none); use only on private networks")
		return auth.NewMiddleware(auth.ModeNone, nil, api.AuthErrorWriter), nil
	}
	jwtManager, err := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.JWTIssuer)
	if err != nil {
		return nil, err
	}
	logging.Info().Msg("JWT authentication enabled")
	return auth.NewMiddleware(auth.ModeJWT, jwtManager, api.AuthErrorWriter), nil
}
