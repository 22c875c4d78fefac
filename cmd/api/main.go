package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/delanoso/safetyhub/api/controllers"
	"github.com/delanoso/safetyhub/api/routes"
	"github.com/delanoso/safetyhub/pkg/auth/session"
	"github.com/delanoso/safetyhub/pkg/config"
	"github.com/delanoso/safetyhub/pkg/db"
	"github.com/delanoso/safetyhub/pkg/logger"
	"github.com/delanoso/safetyhub/pkg/metrics"
	"github.com/delanoso/safetyhub/pkg/migrate"
	"github.com/delanoso/safetyhub/pkg/redis"
	"github.com/delanoso/safetyhub/pkg/storage/gcs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "safetyhub-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "safetyhub-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	var gcsClient *gcs.Client
	if cfg.GCS.Configured() {
		gcsClient, err = gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap object storage", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "object storage not configured; uploads will answer 503")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services, err := buildServices(ctx, deps{
		cfg:      cfg,
		logg:     logg,
		db:       dbClient,
		sessions: sessionManager,
		gcs:      gcsClient,
		business: metrics.NewBusiness(registry),
	})
	if err != nil {
		logg.Error(ctx, "failed to wire services", err)
		os.Exit(1)
	}

	health := []controllers.Dependency{
		{Name: "database", Pinger: dbClient},
		{Name: "redis", Pinger: redisClient},
	}
	if gcsClient != nil {
		health = append(health, controllers.Dependency{Name: "storage", Pinger: gcsClient, Optional: true})
	}

	addr := ":" + cfg.App.Port
	logg.Info(logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr}), "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Infra{
			Health:      health,
			RateLimiter: redisClient,
			Registry:    registry,
			HTTPMetrics: metrics.NewHTTPMetrics(registry),
		}, services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	case runErr = <-serveErr:
		logg.Error(ctx, "api server stopped unexpectedly", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = multierr.Combine(
		server.Shutdown(shutdownCtx),
		redisClient.Close(),
		dbClient.Close(),
	)
	if err != nil {
		logg.Error(shutdownCtx, "error during shutdown", err)
	}
	if runErr != nil || err != nil {
		os.Exit(1)
	}
}
