package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bcnelson/netinventory/internal/api"
	"github.com/bcnelson/netinventory/internal/config"
	"github.com/bcnelson/netinventory/internal/logger"
	"github.com/bcnelson/netinventory/internal/storage"
	"github.com/bcnelson/netinventory/internal/storage/sql"
	"github.com/bcnelson/netinventory/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Debug:  cfg.Log.Debug,
		Format: cfg.Log.Format,
	}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Create data directory if needed (for SQLite)
	if cfg.Database.Driver == sql.DriverSQLite {
		if dir := filepath.Dir(cfg.Database.DSN); dir != "." && cfg.Database.DSN != ":memory:" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				logger.Fatal().Err(err).Str("dir", dir).Msg("Failed to create data directory")
			}
		}
	}

	// Initialize storage
	store, err := sql.New(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer store.Close()

	if cfg.App.ShouldSeed() {
		n, err := storage.SeedIfEmpty(context.Background(), store, storage.SampleEquipment())
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed sample data")
		}
		if n > 0 {
			logger.Info().Int("rows", n).Msg("Seeded sample equipment")
		}
	}

	// Create router
	router := api.NewRouter(store, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info().
		Str("addr", cfg.Server.Addr()).
		Str("mode", cfg.App.Mode).
		Str("driver", cfg.Database.Driver).
		Str("version", version.Version).
		Msg("Starting equipment inventory")

	// Start server in goroutine
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server stopped")
}
