package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Aggregate source metrics
	SourceQueriesTotal  *prometheus.CounterVec
	SourceQueryDuration *prometheus.HistogramVec

	// Counter store metrics
	CounterStoreCommandsTotal   *prometheus.CounterVec
	CounterStoreCommandDuration *prometheus.HistogramVec
	CounterStoreBatchKeys       prometheus.Histogram
	CounterStoreDegradedTotal   prometheus.Counter

	// Business metrics
	PackagesTotal  prometheus.Gauge
	VersionsTotal  prometheus.Gauge
	DownloadsTotal prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regstats_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regstats_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regstats_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),

		SourceQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regstats_source_queries_total",
				Help: "Total number of aggregate source queries",
			},
			[]string{"query", "kind", "status"},
		),
		SourceQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regstats_source_query_duration_seconds",
				Help:    "Aggregate source query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"query", "kind"},
		),

		CounterStoreCommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regstats_counter_store_commands_total",
				Help: "Total number of counter store commands",
			},
			[]string{"command", "status"},
		),
		CounterStoreCommandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regstats_counter_store_command_duration_seconds",
				Help:    "Counter store command duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"command"},
		),
		CounterStoreBatchKeys: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "regstats_counter_store_batch_keys",
				Help:    "Number of keys fetched per batch read",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		CounterStoreDegradedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "regstats_counter_store_degraded_total",
				Help: "Dashboard computations served without download data",
			},
		),

		PackagesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "regstats_packages_total",
				Help: "Total number of packages at the last computation",
			},
		),
		VersionsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "regstats_versions_total",
				Help: "Total number of versions at the last computation",
			},
		),
		DownloadsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "regstats_downloads_total",
				Help: "All-time downloads at the last successful read",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.SourceQueriesTotal,
		m.SourceQueryDuration,
		m.CounterStoreCommandsTotal,
		m.CounterStoreCommandDuration,
		m.CounterStoreBatchKeys,
		m.CounterStoreDegradedTotal,
		m.PackagesTotal,
		m.VersionsTotal,
		m.DownloadsTotal,
	)

	return m
}

// ObserveSourceQuery records one aggregate source query. Safe to call on a nil receiver.
func (m *Metrics) ObserveSourceQuery(query, kind string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.SourceQueriesTotal.WithLabelValues(query, kind, statusLabel(err)).Inc()
	m.SourceQueryDuration.WithLabelValues(query, kind).Observe(time.Since(start).Seconds())
}

// ObserveCounterCommand records one counter store command. Safe to call on a nil receiver.
func (m *Metrics) ObserveCounterCommand(command string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.CounterStoreCommandsTotal.WithLabelValues(command, statusLabel(err)).Inc()
	m.CounterStoreCommandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// unmatchedRoute labels requests that did not match a registered route
const unmatchedRoute = "unmatched"

// routeLabel returns the matched mux path template, so path labels stay bounded
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return unmatchedRoute
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics. It must run inside
// the mux router (router.Use or the router's NotFoundHandler) to see the matched route.
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)
			path := routeLabel(r)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
			metrics.HTTPResponseSize.WithLabelValues(r.Method, path).Observe(float64(rw.bytesWritten))
		})
	}
}

// RegisterMetricsEndpoint registers the /metrics endpoint
func RegisterMetricsEndpoint(mux *http.ServeMux, registry *prometheus.Registry) {
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
