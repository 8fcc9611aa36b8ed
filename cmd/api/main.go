// Copyright (c) 2026 Agrio India. All rights reserved.

// Command api is the entry point for the Agrio HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env in development).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// Nothing here contains business logic; each domain is wired by plain
// constructor calls so the full dependency graph reads top to bottom.
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

	"github.com/joho/godotenv"

	"github.com/agrioindia/platform/internal/admin"
	"github.com/agrioindia/platform/internal/api"
	"github.com/agrioindia/platform/internal/catalog/crop"
	"github.com/agrioindia/platform/internal/catalog/product"
	"github.com/agrioindia/platform/internal/contact"
	"github.com/agrioindia/platform/internal/distributor"
	"github.com/agrioindia/platform/internal/platform/config"
	"github.com/agrioindia/platform/internal/platform/constants"
	"github.com/agrioindia/platform/internal/platform/migration"
	pgstore "github.com/agrioindia/platform/internal/platform/postgres"
	redisstore "github.com/agrioindia/platform/internal/platform/redis"
	"github.com/agrioindia/platform/internal/platform/sec"
	"github.com/agrioindia/platform/internal/rewards"
	"github.com/agrioindia/platform/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Comes up before anything else so even a failed config load is a
	// structured JSON line.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Every entry from any layer carries the app name.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env keeps development setups out of the shell profile. Its
	// absence is not an error; production injects real environment variables.
	if err := godotenv.Load(); err == nil {
		log.Info("dotenv_loaded")
	}

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

	// Startup gets a 30s deadline: a wrong DATABASE_URL should fail the
	// boot, not hang it.
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

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

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
	// An SMS gateway implementation replaces this once the contract is live.
	// Until then the structured log is the only delivery channel.
	var otpSender auth.OTPSender = &auth.LogOTPSender{Logger: log}

	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	otpRepository := auth.NewOTPRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, otpRepository, jwtSvc, otpSender)
	authHandler := auth.NewHandler(authService)

	productRepository := product.NewRepository(pool)
	productHandler := product.NewHandler(product.NewService(productRepository))

	cropRepository := crop.NewRepository(pool)
	cropHandler := crop.NewHandler(crop.NewService(cropRepository))

	distributorRepository := distributor.NewRepository(pool)
	distributorHandler := distributor.NewHandler(distributor.NewService(distributorRepository))

	couponRepository := rewards.NewCouponRepository(pool)
	rewardRepository := rewards.NewRewardRepository(pool)
	rewardsHandler := rewards.NewHandler(rewards.NewService(couponRepository, rewardRepository))

	contactRepository := contact.NewRepository(pool)
	contactHandler := contact.NewHandler(contact.NewService(contactRepository))

	adminRepository := admin.NewRepository(pool)
	adminHandler := admin.NewHandler(admin.NewService(adminRepository, jwtSvc))

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Auth:        authHandler,
		Product:     productHandler,
		Crop:        cropHandler,
		Distributor: distributorHandler,
		Rewards:     rewardsHandler,
		Contact:     contactHandler,
		Admin:       adminHandler,
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Park here until the OS asks us to stop or the listener dies.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Drain in-flight requests before the process exits.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs the error with a startup step label and exits with status 1.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed", slog.String("step", step), slog.Any("error", err))
		os.Exit(1)
	}
}
