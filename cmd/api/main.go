package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vibecheck-labs/vibecheck/internal/adapters/gemini"
	"github.com/vibecheck-labs/vibecheck/internal/adapters/questions"
	"github.com/vibecheck-labs/vibecheck/internal/adapters/rest"
	"github.com/vibecheck-labs/vibecheck/internal/adapters/spotify"
	"github.com/vibecheck-labs/vibecheck/internal/adapters/sqlite"
	"github.com/vibecheck-labs/vibecheck/internal/config"
	"github.com/vibecheck-labs/vibecheck/internal/core/services"
	"github.com/vibecheck-labs/vibecheck/internal/metrics"
	"github.com/vibecheck-labs/vibecheck/internal/worker"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	cfgPath := os.Getenv("VIBECHECK_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "err", err)
	}

	ctx := context.Background()

	// Driven adapters.
	history, err := sqlite.NewAdapter(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to initialize database", "err", err)
	}
	defer history.Close()

	generator, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:     cfg.Credentials.Gemini.APIKey,
		Model:      cfg.Credentials.Gemini.Model,
		TrackCount: cfg.Generation.TrackCount,
	})
	if err != nil {
		logger.Fatal("failed to initialize generator", "err", err)
	}

	spotifyClient := spotify.NewClient(spotify.WithLogger(logger))
	authenticator := spotify.NewAuthenticator(
		cfg.Credentials.Spotify.ClientID,
		cfg.Credentials.Spotify.ClientSecret,
		cfg.Credentials.Spotify.RedirectURI,
	)

	// Background history writes.
	pool := worker.NewPool(history, cfg.Generation.QueueSize, logger)
	pool.Start(cfg.Generation.Workers)
	defer pool.Stop()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Core service.
	svc := services.NewOrchestrator(services.Deps{
		Questions:      questions.NewCatalog(),
		Generator:      generator,
		Resolver:       spotifyClient,
		Exporter:       spotifyClient,
		History:        history,
		Jobs:           pool,
		Metrics:        collector,
		Logger:         logger,
		ResolveWorkers: cfg.Generation.ResolveWorkers,
	})

	// Driving adapter.
	handler := rest.NewHandler(svc, rest.Options{
		Auth:        authenticator,
		Profiles:    spotifyClient,
		Logger:      logger,
		FrontendURL: cfg.Server.FrontendURL,
		Metrics:     metrics.Handler(registry),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	logger.Info("vibecheck API running", "addr", cfg.Addr())

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("server error", "err", err)
		}
	case <-sigCtx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "err", err)
		}
	}
}
