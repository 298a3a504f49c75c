package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/regstats/pkg/httputil"
	"github.com/platinummonkey/regstats/pkg/observability"
	"github.com/platinummonkey/regstats/pkg/stats"
	"github.com/sirupsen/logrus"
)

// StatsService is the part of stats.Service the handlers need
type StatsService interface {
	Dashboard(ctx context.Context) (*stats.ChartPayload, error)
	Totals(ctx context.Context) (*stats.TotalsResponse, error)
}

// StatsHandlers serves the public statistics endpoints
type StatsHandlers struct {
	service StatsService
	logger  *logrus.Logger
}

// NewStatsHandlers creates a new statistics handlers instance
func NewStatsHandlers(service StatsService, logger *logrus.Logger) *StatsHandlers {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &StatsHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers statistics routes
func (h *StatsHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/statistics", h.getDashboard).Methods("GET")
	r.HandleFunc("/statistics.json", h.getTotals).Methods("GET")
}

// getDashboard handles GET /statistics
// Returns the chart payload; download fields are "unavailable"/null when the counter store is down
func (h *StatsHandlers) getDashboard(w http.ResponseWriter, r *http.Request) {
	payload, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, payload)
}

// getTotals handles GET /statistics.json
func (h *StatsHandlers) getTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Totals(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, totals)
}

func (h *StatsHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, stats.ErrFeatureDisabled) {
		httputil.WriteTemporarilyDisabled(w)
		return
	}

	observability.FromContext(r.Context(), h.logger).WithError(err).WithField("path", r.URL.Path).Error("Failed to compute statistics")
	httputil.WriteInternalError(w)
}
