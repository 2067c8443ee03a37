package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/terra-clan/resilience-scorecard/internal/api"
	"github.com/terra-clan/resilience-scorecard/internal/catalog"
	"github.com/terra-clan/resilience-scorecard/internal/config"
	"github.com/terra-clan/resilience-scorecard/internal/reload"
	"github.com/terra-clan/resilience-scorecard/pkg/delivery"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting scorecard-api",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"catalog", cfg.Catalog.Path,
	)

	// Load catalog. The server stays up and reports not ready until one loads.
	catalogs := catalog.NewLoader()
	if err := catalogs.Load(cfg.Catalog.Path); err != nil {
		slog.Warn("failed to load catalog", "path", cfg.Catalog.Path, "error", err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start catalog watcher
	if cfg.Catalog.ReloadInterval > 0 {
		reload.NewWatcher(catalogs, cfg.Catalog.Path, cfg.Catalog.ReloadInterval).Start(ctx)
	}

	// Initialize delivery client
	deliverer := delivery.NewClient(cfg.Delivery.BaseURL, cfg.Delivery.APIKey,
		delivery.WithEndpoint(cfg.Delivery.Endpoint),
		delivery.WithTimeout(cfg.Delivery.Timeout),
		delivery.WithMaxAttempts(cfg.Delivery.MaxAttempts),
		delivery.WithRetryDelay(cfg.Delivery.RetryDelay),
	)
	slog.Info("delivery client configured", "url", deliverer.URL())

	// Setup HTTP server
	server := api.NewServer(cfg, catalogs, deliverer)
	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// SIGHUP reloads the catalog, SIGINT/SIGTERM stop the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for sig := range sigs {
		if sig != syscall.SIGHUP {
			break
		}
		slog.Info("reloading catalog", "path", cfg.Catalog.Path)
		if err := catalogs.Load(cfg.Catalog.Path); err != nil {
			slog.Error("catalog reload failed, keeping previous catalog", "error", err)
		}
	}

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("scorecard-api stopped")
}
