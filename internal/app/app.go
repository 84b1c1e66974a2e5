// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-visitor-achievements/internal/bootstrap"
	"github.com/AccelByte/extend-visitor-achievements/internal/config"
	"github.com/AccelByte/extend-visitor-achievements/internal/server"
	"github.com/AccelByte/extend-visitor-achievements/pkg/handler"
	"github.com/AccelByte/extend-visitor-achievements/pkg/ledger"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	httpServer        *server.HTTPServer
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Redis (unless LEDGER_BACKEND=memory)
// 2. Rule catalog (built-in or CATALOG_PATH)
// 3. Ledger, stats source and listeners
// 4. Achievement engine
// 5. Servers (HTTP API, gRPC health, metrics)
// 6. Telemetry (OpenTelemetry tracing)
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Initialize Redis
	// ============================================================
	if cfg.LedgerBackend == config.LedgerBackendRedis {
		if err := app.initRedis(ctx); err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
	}

	// ============================================================
	// Step 2: Load the rule catalog
	// ============================================================
	catalog, err := bootstrap.InitCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	// ============================================================
	// Step 3: Ledger, stats source and listeners
	// ============================================================
	unlockLedger, err := bootstrap.InitLedger(cfg, app.redisClient, catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to init ledger: %w", err)
	}
	source := bootstrap.InitSource(cfg)
	listener := bootstrap.InitListener(cfg, app.redisClient, catalog)

	// ============================================================
	// Step 4: Achievement engine
	// ============================================================
	engine := bootstrap.InitEngine(catalog, unlockLedger, source, listener)

	// ============================================================
	// Step 5: Setup servers
	// ============================================================
	checker := ledger.NewHealthChecker(app.redisClient)

	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, cfg.RequestTimeout, handler.NewAchievements(engine), checker)
	if err := app.httpServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup HTTP server: %w", err)
	}

	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, checker)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	// ============================================================
	// Step 6: Setup telemetry
	// ============================================================
	shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, 0, cfg.ZipkinEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}
	app.shutdownTelemetry = shutdownTelemetry

	logrus.Info("application initialized successfully")

	return app, nil
}

// initRedis initializes the Redis client.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisAddr(),
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(a.cfg.RedisRetryDelayMs) * time.Millisecond
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries)), ctx)

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		policy,
	)

	if err != nil {
		_ = client.Close()
		return err
	}

	a.redisClient = client
	logrus.Infof("Redis client initialized (%s)", a.cfg.RedisAddr())
	return nil
}
