// Copyright (c) 2026 Pictufy Mirror. All rights reserved.
// Author: totmarc

// Command api is the entry point for the Pictufy Mirror HTTP server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire the upstream client, catalog, mirror, and sweep services.
//  7. Start the cron scheduler and the HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/totmarc/pictufy-mirror/internal/api"
	"github.com/totmarc/pictufy-mirror/internal/catalog"
	"github.com/totmarc/pictufy-mirror/internal/mirror"
	"github.com/totmarc/pictufy-mirror/internal/pictufy"
	"github.com/totmarc/pictufy-mirror/internal/platform/config"
	"github.com/totmarc/pictufy-mirror/internal/platform/constants"
	"github.com/totmarc/pictufy-mirror/internal/platform/migration"
	pgstore "github.com/totmarc/pictufy-mirror/internal/platform/postgres"
	redisstore "github.com/totmarc/pictufy-mirror/internal/platform/redis"
	"github.com/totmarc/pictufy-mirror/internal/platform/sec"
	"github.com/totmarc/pictufy-mirror/internal/sweep"
	"github.com/totmarc/pictufy-mirror/internal/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[PictufyMirror] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Nonce Service ──────────────────────────────────────────────────
	nonceSvc, err := sec.NewNonceService(cfg.SessionSecret, constants.NonceIssuer, constants.NonceTTL)
	must(log, err, "initialize nonce service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	upstream := pictufy.NewClient(cfg.PictufyAPIURL, cfg.PictufyAPIKey, log)

	catalogCache := catalog.NewRedisCache(rdb, log)
	catalogService := catalog.NewService(upstream, catalogCache, log)
	catalogHandler := catalog.NewHandler(catalogService, nonceSvc, log)

	mirrorRepository := mirror.NewPostgresRepository(pool)
	mirrorService := mirror.NewService(mirrorRepository, catalogCache, log)
	mirrorService.OnRemoved(func(_ context.Context, item pictufy.ExpiredRecord, entryID int) {
		log.Info("mirror_entry_removed",
			slog.String("artwork_id", string(item.ArtworkID)),
			slog.Int("entry_id", entryID),
		)
	})
	mirrorHandler := mirror.NewHandler(mirrorService, log)

	renderer, err := web.NewRenderer()
	must(log, err, "parse page templates")
	pagesHandler := web.NewHandler(catalogService, nonceSvc, renderer, log)

	// ── 9. Expiry Sweep ───────────────────────────────────────────────────
	sweeper := sweep.NewSweeper(upstream, log)
	sweeper.OnExpired(mirrorService.HandleExpired)

	scheduler := sweep.NewScheduler(log)
	must(log, scheduler.Register(cfg.SweepSchedule, "expired-artworks-sweep", func() {
		sweeper.Run(context.Background())
	}), "register sweep job")

	scheduler.Start()
	defer scheduler.Stop()

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalogHandler,
		Mirror:    mirrorHandler,
		Pages:     pagesHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
