// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package main is the entry point for the Pulseboard server.
//
// Pulseboard polls two upstream JSON documents (a community leaderboard
// and a raw post feed), normalizes them into a canonical in-memory model
// and serves a leaderboard, analytics and export API on top.
//
// Startup order:
//
//  1. Configuration: layered Koanf v2 load (defaults, YAML file, env)
//  2. Logging: zerolog, configured from the logging section
//  3. Activity store, view state and analytics cache
//  4. Source client, wrapped in a circuit breaker, behind the sync manager
//  5. HTTP server with the chi route tree
//  6. Supervisor tree: sync layer and api layer under one suture root
//
// The server handles graceful shutdown on SIGINT and SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/kvas-dev/pulseboard/internal/api"
	"github.com/kvas-dev/pulseboard/internal/cache"
	"github.com/kvas-dev/pulseboard/internal/config"
	"github.com/kvas-dev/pulseboard/internal/logging"
	"github.com/kvas-dev/pulseboard/internal/metrics"
	"github.com/kvas-dev/pulseboard/internal/store"
	"github.com/kvas-dev/pulseboard/internal/supervisor"
	"github.com/kvas-dev/pulseboard/internal/supervisor/services"
	"github.com/kvas-dev/pulseboard/internal/sync"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("leaderboard_url", cfg.Source.LeaderboardURL).
		Str("posts_url", cfg.Source.PostsURL).
		Dur("sync_interval", cfg.Sync.Interval).
		Msg("Starting Pulseboard")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	activityStore := store.NewActivityStore()
	stateHolder := store.NewStateHolder()
	analyticsCache := cache.New(cfg.Cache.TTL)
	defer analyticsCache.Stop()

	client := sync.NewCircuitBreakerClient(sync.NewSourceClient(cfg.Source))
	manager := sync.NewManager(client, activityStore, analyticsCache, cfg.Sync)

	handler := api.NewHandler(activityStore, stateHolder, analyticsCache, manager)
	router := api.NewRouter(handler, api.NewChiMiddleware(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddSyncService(services.NewSyncService(manager))
	tree.AddAPIService(services.NewHTTPService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	startedAt := time.Now()
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.AppUptime.Set(time.Since(startedAt).Seconds())
			}
		}
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

	logging.Info().Msg("Pulseboard stopped gracefully")
}
