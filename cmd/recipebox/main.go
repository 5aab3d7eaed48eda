// Package main is the entry point for the recipebox server.
// It loads configuration, waits for PostgreSQL, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"

	"recipebox/internal/cache"
	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/handlers"
	"recipebox/internal/middleware"
	"recipebox/internal/router"
	"recipebox/internal/store"
	"recipebox/web"
)

func main() {
	// Load configuration from environment variables (and .env).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(os.Stdout, cfg))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"cache", cfg.CacheEnabled(),
	)

	// Open the PostgreSQL pool and hold the listener until it answers.
	db, err := database.Connect(cfg.DSN(), cfg.DBMaxConns)
	if err != nil {
		slog.Error("failed to open database pool", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	signalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.WaitUntilReady(signalCtx, db, cfg.DBWaitAttempts, cfg.DBWaitInterval); err != nil {
		slog.Error("database unavailable, giving up", "error", err)
		os.Exit(1)
	}

	// Create the schema if it does not exist yet.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed sample data on request (no-op if data already exists).
	if cfg.DBSeed {
		if err := database.Seed(signalCtx, db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// The list cache is optional; without Valkey every read hits PostgreSQL.
	var listCache *cache.ListCache
	if cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(signalCtx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unreachable, list cache disabled", "error", err)
		} else {
			defer closeValkey(client)
			listCache = cache.NewListCache(client, cache.DefaultListTTL)
		}
	}

	limiter := newRateLimiter(cfg)
	if limiter != nil {
		defer limiter.Stop()
	}

	r := router.New(
		handlers.NewHealth(db),
		handlers.NewCategories(store.NewCategoryStore(db), listCache),
		handlers.NewRecipes(store.NewRecipeStore(db), listCache),
		handlers.NewStatic(web.Static()),
		limiter,
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-signalCtx.Done()
	stop()
	slog.Info("shutdown signal received")

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newLogger returns colored text output in development and JSON otherwise.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := cfg.SlogLevel()
	if cfg.IsDev() {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// newRateLimiter returns the /api limiter, or nil when RATE_LIMIT is zero.
// Requests otherwise queue for a pool connection and are never refused.
func newRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimit <= 0 {
		return nil
	}
	slog.Info("api rate limit enabled",
		"per_second", cfg.RateLimit,
		"burst", cfg.RateBurst,
		"trust_proxy", cfg.TrustProxy,
	)
	return middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.TrustProxy)
}

func closeValkey(client *redis.Client) {
	if err := client.Close(); err != nil {
		slog.Warn("closing valkey client", "error", err)
	}
}
