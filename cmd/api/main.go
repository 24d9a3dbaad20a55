// Command api is the Scorecheck API server.
//
// Usage:
//
//	scorecheck-api
//	API_PORT=8080 scorecheck-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/scorecheck/scorecheck/internal/api"
	"github.com/scorecheck/scorecheck/internal/cache"
	"github.com/scorecheck/scorecheck/internal/config"
	"github.com/scorecheck/scorecheck/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	clock := clockwork.NewRealClock()

	store, closeStore, err := newStore(ctx, cfg, clock)
	if err != nil {
		logger.Error("Failed to initialize cache store", "error", err)
		os.Exit(1)
	}
	if closeStore != nil {
		defer closeStore()
	}
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "backend", cfg.CacheBackend)

	cacheSvc := cache.NewService(store, clock, logger)
	svc := service.New(cfg, cacheSvc, clock, logger)
	router := api.NewRouter(svc, cfg, logger)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting Scorecheck API",
			"addr", addr,
			"source", cfg.DataSource)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// newStore builds the configured cache store. A nil store disables caching.
func newStore(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (cache.Store, func(), error) {
	if !cfg.CacheEnabled {
		return nil, nil, nil
	}
	switch cfg.CacheBackend {
	case config.CachePostgres:
		pg, err := cache.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	case config.CacheRedis:
		rd, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return rd, func() { rd.Close() }, nil
	default:
		return cache.NewMemory(ctx, clock), nil, nil
	}
}
