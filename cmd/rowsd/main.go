package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rowsd/rowsd/pkg/api"
	"github.com/rowsd/rowsd/pkg/config"
	"github.com/rowsd/rowsd/pkg/middleware"
	"github.com/rowsd/rowsd/pkg/observability"
	"github.com/rowsd/rowsd/pkg/storage"
	"github.com/rowsd/rowsd/pkg/swagger"
)

func main() {
	configPath := flag.String("config", "config/config.toml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging.Level, cfg.Environment == config.EnvProduction, nil)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	store, err := storage.NewSQLiteStore(cfg.SQLite)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize storage")
	}
	logger.WithField("database", cfg.SQLite.Database).Info("storage initialized")

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	instrumented := observability.NewInstrumentedStore(store, metrics)

	auth := middleware.NewTokenAuth(cfg.Auth.Token)
	server, err := api.NewServer(instrumented, auth, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to build API server")
	}
	server.Use(observability.HTTPMetricsMiddleware(metrics))

	server.RegisterRoutes(swagger.NewHandlers())
	server.RegisterRoutes(observability.NewHealthChecker(store.DB()))
	server.RegisterRoutes(metrics)

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      server,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	shutdown := observability.NewShutdownManager(logger, httpServer, cfg.HTTP.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error { return store.Close() })

	go func() {
		logger.WithField("addr", cfg.HTTP.Addr()).Info("server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	if err := shutdown.WaitForShutdown(); err != nil {
		logger.WithError(err).Error("shutdown finished with errors")
	}
}
