package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/georgemunganga/vendor-api/internal/config"
	"github.com/georgemunganga/vendor-api/internal/modules/auth"
	"github.com/georgemunganga/vendor-api/internal/modules/user"
	"github.com/georgemunganga/vendor-api/internal/modules/vendor"
	"github.com/georgemunganga/vendor-api/internal/platform/logger"
	"github.com/georgemunganga/vendor-api/internal/platform/observability"
	"github.com/georgemunganga/vendor-api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if cfg.InsecureSecret {
		log.Warn("JWT_SECRET is not set; signing tokens with the built-in development secret")
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewMemoryRepository()
	userService := user.NewService(userRepo)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	authService := auth.NewService(userRepo, tokens)
	resolver := auth.NewResolver(cfg.JWTSecret, log)

	// ── Vendors ─────────────────────────────────────────────
	var vendorOpts []vendor.MemoryOption
	if cfg.SeedVendors {
		vendorOpts = append(vendorOpts, vendor.WithSeed(vendor.SampleVendors()...))
		log.Info("vendor store seeded with sample data")
	}
	vendorRepo := vendor.NewMemoryRepository(vendorOpts...)
	vendorService := vendor.NewService(vendorRepo, log, metrics)

	router := server.NewRouter(cfg, log, metrics, resolver,
		user.NewHandler(userService, log),
		auth.NewHandler(authService, log),
		vendor.NewHandler(vendorService, log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, log, router); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
