package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/regstats/pkg/httputil"
	"github.com/platinummonkey/regstats/pkg/observability"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server represents our API server
type Server struct {
	router  *mux.Router
	handler http.Handler
	logger  *logrus.Logger
}

// NewServer creates a new API server. metrics may be nil.
func NewServer(service StatsService, logger *logrus.Logger, metrics *observability.Metrics) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		router: mux.NewRouter(),
		logger: logger,
	}
	var notFound http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteErrorMessage(w, http.StatusNotFound, "not found")
	})
	var notAllowed http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	if metrics != nil {
		// inside the router so requests are labelled by route template
		instrument := observability.HTTPMetricsMiddleware(metrics)
		s.router.Use(instrument)
		notFound = instrument(notFound)
		notAllowed = instrument(notAllowed)
	}
	s.router.NotFoundHandler = notFound
	s.router.MethodNotAllowedHandler = notAllowed

	s.RegisterRoutes(NewStatsHandlers(service, logger))

	middlewares := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(logger),
		httputil.RecoveryMiddleware(logger),
	}

	chained := httputil.Chain(middlewares...)(s.router)
	s.handler = otelhttp.NewHandler(chained, "regstats",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// RouteRegistrar is an interface for types that can register routes
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// RegisterRoutes registers routes from a RouteRegistrar
func (s *Server) RegisterRoutes(registrar RouteRegistrar) {
	registrar.RegisterRoutes(s.router)
}
