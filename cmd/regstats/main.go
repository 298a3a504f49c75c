package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/platinummonkey/regstats/pkg/api"
	"github.com/platinummonkey/regstats/pkg/config"
	"github.com/platinummonkey/regstats/pkg/killswitch"
	"github.com/platinummonkey/regstats/pkg/observability"
	"github.com/platinummonkey/regstats/pkg/stats"
	"github.com/platinummonkey/regstats/pkg/storage"
	"github.com/platinummonkey/regstats/pkg/storage/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat, os.Stdout)
	logger.WithField("version", version).Info("Starting registry statistics service")

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("Service exited with error")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelCfg := cfg.Observability.OTel
	otelCfg.ServiceVersion = version
	providers, err := observability.InitOTel(ctx, otelCfg, logger)
	if err != nil {
		return err
	}

	// Metrics
	registry := prometheus.NewRegistry()
	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = observability.NewMetrics(registry)
	}

	// Aggregate source
	db, err := postgres.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("Connected to PostgreSQL")

	// Counter store; connects lazily so a Redis outage only degrades the dashboard
	counters, err := storage.NewRedisCounterStore(cfg.Storage)
	if err != nil {
		db.Close()
		return err
	}
	counters.WithMetrics(metrics)

	flags, err := killswitch.Load(cfg.KillswitchFile, logger)
	if err != nil {
		db.Close()
		counters.Close()
		return err
	}
	if cfg.KillswitchFile != "" {
		if err := flags.Watch(ctx); err != nil {
			logger.WithError(err).Warn("Killswitch file will not be hot-reloaded")
		}
	}

	service := stats.NewService(
		postgres.NewSource(db).WithMetrics(metrics),
		counters,
		flags,
		logger,
	).WithMetrics(metrics)

	apiServer := &http.Server{
		Addr:         cfg.Server.ListenAddr(),
		Handler:      api.NewServer(service, logger, metrics),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Health and metrics on a separate port for k8s probes
	healthMux := http.NewServeMux()
	observability.RegisterHealthRoutes(healthMux, observability.NewHealthChecker(db, counters.Client()).WithVersion(version))
	if cfg.Observability.MetricsEnabled {
		observability.RegisterMetricsEndpoint(healthMux, registry)
	}
	healthServer := &http.Server{
		Addr:         cfg.Server.HealthAddr(),
		Handler:      healthMux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout, apiServer, healthServer)
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		cancel()
		return nil
	})
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		return counters.Close()
	})
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		return db.Close()
	})
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return observability.ShutdownOTel(ctx, providers, logger)
	})

	errCh := make(chan error, 2)
	for _, srv := range []*http.Server{apiServer, healthServer} {
		go func(srv *http.Server) {
			defer observability.RecoverPanic(logger, "http server "+srv.Addr)
			logger.Infof("Listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv)
	}

	go func() {
		if err := shutdown.WaitForShutdown(); err != nil {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	if err := <-errCh; err != nil {
		shutdown.Shutdown()
		return err
	}

	logger.Info("Shutdown complete")
	return nil
}
