// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command web is the entry point for the Inkstone web server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the relational database (PostgreSQL or SQLite).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire sessions, templates, and domain handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/inkstone/internal/blog"
	"github.com/taibuivan/inkstone/internal/platform/config"
	"github.com/taibuivan/inkstone/internal/platform/constants"
	"github.com/taibuivan/inkstone/internal/platform/migration"
	pgstore "github.com/taibuivan/inkstone/internal/platform/postgres"
	redisstore "github.com/taibuivan/inkstone/internal/platform/redis"
	"github.com/taibuivan/inkstone/internal/platform/render"
	"github.com/taibuivan/inkstone/internal/platform/session"
	sqlitestore "github.com/taibuivan/inkstone/internal/platform/sqlite"
	"github.com/taibuivan/inkstone/internal/users/auth"
	"github.com/taibuivan/inkstone/internal/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "inkstone"))
	slog.SetDefault(log)

	log.Info("[Inkstone] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "inkstone"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("database_driver", cfg.DatabaseDriver),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Relational Database ────────────────────────────────────────────
	// The driver decides which repository implementations serve the domain.
	var (
		userRepository auth.UserRepository
		postRepository blog.Repository
		checkDatabase  func() error
		databaseDSN    string
	)

	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		pool, perr := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, perr, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		userRepository = auth.NewPostgresUserRepository(pool)
		postRepository = blog.NewPostgresRepository(pool)
		checkDatabase = func() error {
			return pgstore.Ping(context.Background(), pool)
		}
		databaseDSN = cfg.DatabaseURL

	case config.DriverSQLite:
		db, serr := sqlitestore.Open(startupCtx, cfg.SQLitePath, log)
		must(log, serr, "open sqlite database")
		defer func() {
			log.Info("closing sqlite database")
			if cerr := db.Close(); cerr != nil {
				log.Error("sqlite close error", slog.Any("error", cerr))
			}
		}()

		userRepository = auth.NewSQLiteUserRepository(db)
		postRepository = blog.NewSQLiteRepository(db)
		checkDatabase = func() error {
			return sqlitestore.Ping(context.Background(), db)
		}
		databaseDSN = cfg.SQLitePath

	default:
		// config.Load already rejects unknown drivers; keep the switch total.
		must(log, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver), "select database driver")
	}

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
	must(log, migration.RunUp(cfg.DatabaseDriver, databaseDSN, cfg.MigrationPath, log), "run migrations")

	// ── 6. Sessions ───────────────────────────────────────────────────────
	sessionStore := session.NewRedisStore(rdb, cfg.SessionSecret)
	sessionManager := session.NewManager(sessionStore, cfg.IsProduction())

	// ── 7. Render Engine ──────────────────────────────────────────────────
	renderer, err := render.NewEngine(web.Templates(), sessionManager)
	must(log, err, "parse templates")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := web.NewHealthHandlers(web.HealthDependencies{
		CheckDatabase: checkDatabase,
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(userRepository, log)
	authHandler := auth.NewHandler(authService, renderer)

	blogService := blog.NewService(postRepository, log)
	blogHandler := blog.NewHandler(blogService, renderer)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := web.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Blog:      blogHandler,
	}

	server := web.NewServer(cfg, log, sessionManager, authService, renderer, handlers)

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
