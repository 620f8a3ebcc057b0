// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the deckgen API server.
// It loads configuration, connects to services, starts the generation
// workers, and serves the HTTP API with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deckgen/internal/ai"
	"deckgen/internal/assembler"
	"deckgen/internal/cache"
	"deckgen/internal/config"
	"deckgen/internal/database"
	"deckgen/internal/generator"
	"deckgen/internal/handlers"
	"deckgen/internal/images"
	"deckgen/internal/router"
	"deckgen/internal/session"
	"deckgen/internal/storage"
	"deckgen/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible session and deck cache store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session store backed by Valkey, keyed by bearer token.
	sessionStore := session.NewStore(valkeyClient)

	// Data stores.
	userStore := store.NewUserStore(db)
	presentationStore := store.NewPresentationStore(db)
	slideStore := store.NewSlideStore(db)

	// AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, cfg.Providers)
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Pexels client for image search and download. Without an API key the
	// resolver tags every picture placeholder as failed rather than erroring
	// the whole generation.
	pexelsClient := images.NewClient(cfg.PexelsAPIKey, cfg.PexelsBaseURL)
	if cfg.PexelsAPIKey == "" {
		slog.Warn("pexels api key not configured, slide images disabled")
	}
	imageResolver := images.NewResolver(pexelsClient)

	// Deck assembly (slides -> pptx) and the Valkey cache of rendered files.
	asm := assembler.New(pexelsClient)
	deckCache := cache.NewDeckCache(valkeyClient, cache.DefaultDeckTTL)

	// Optional S3-compatible archive for rendered decks.
	deckArchive, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		slog.Error("failed to initialize deck archive", "error", err)
		os.Exit(1)
	}
	if deckArchive != nil {
		slog.Info("deck archive connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("deck archive not configured, rendered decks kept in cache only")
	}

	// Generation pipeline: worker pool draining a queue of presentation IDs.
	gen := generator.New(aiRegistry, imageResolver, presentationStore, slideStore)
	runner := generator.NewRunner(gen, cfg.GenWorkers, cfg.GenBacklog)

	runCtx, stopWorkers := context.WithCancel(context.Background())
	runner.Start(runCtx)
	slog.Info("generation workers started", "workers", cfg.GenWorkers, "backlog", cfg.GenBacklog)

	// Handler groups.
	authHandlers := handlers.NewAuth(sessionStore, userStore)
	presentationHandlers := handlers.NewPresentations(presentationStore, slideStore, runner, asm, deckCache, deckArchive)
	adminHandlers := handlers.NewAdmin(aiRegistry)

	r := router.New(sessionStore, authHandlers, presentationHandlers, adminHandlers)

	// WriteTimeout must accommodate cold deck downloads, which may fetch
	// several images from Pexels before the archive starts streaming.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections
	// and let in-flight generations finish.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	stopWorkers()
	runner.Wait()

	slog.Info("server stopped gracefully")
}
