// Package observability provides logging, Prometheus metrics, OpenTelemetry tracing,
// health checks and graceful shutdown for the statistics service.
//
// # Logging
//
// Loggers are plain logrus loggers:
//
//	logger := observability.NewLogger("info", "text", os.Stdout)
//	observability.FromContext(ctx, logger).WithError(err).Warn("counter store unavailable")
//
// FromContext attaches the request ID and, when a span is recording, the trace and span IDs.
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.ObserveCounterCommand("mget", start, err)
//
// Observe helpers are nil-safe so components can run without metrics in tests.
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(db, redisClient)
//	observability.RegisterHealthRoutes(mux, checker)
//
// The database is required for readiness; the counter store only degrades it.
//
// # OpenTelemetry
//
//	providers, err := observability.InitOTel(ctx, cfg, logger)
//	defer observability.ShutdownOTel(ctx, providers, logger)
package observability
