package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/platinummonkey/regstats/pkg/observability"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FlagDownloads is the feature flag guarding every statistics response
const FlagDownloads = "downloads"

var tracer = otel.Tracer("github.com/platinummonkey/regstats/pkg/stats")

// Service computes dashboard payloads and totals for one request at a time
type Service struct {
	source   Source
	counters CounterStore
	flags    FeatureFlags
	logger   *logrus.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewService creates a new statistics service
func NewService(source Source, counters CounterStore, flags FeatureFlags, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		source:   source,
		counters: counters,
		flags:    flags,
		logger:   logger,
		now:      time.Now,
	}
}

// WithMetrics records degradation and totals on m
func (s *Service) WithMetrics(m *observability.Metrics) *Service {
	s.metrics = m
	return s
}

// WithClock replaces the time source
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Dashboard computes the full chart payload. It returns ErrFeatureDisabled when the
// downloads flag is off and propagates aggregate source failures. Counter store failures
// are absorbed into the payload.
func (s *Service) Dashboard(ctx context.Context) (*ChartPayload, error) {
	if !s.flags.IsEnabled(FlagDownloads) {
		return nil, ErrFeatureDisabled
	}

	ctx, span := tracer.Start(ctx, "stats.Dashboard")
	defer span.End()

	packages, err := s.source.GetMonthlyCounts(ctx, EntityPackage)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("get package counts: %w", err))
	}
	versions, err := s.source.GetMonthlyCounts(ctx, EntityVersion)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("get version counts: %w", err))
	}

	payload, err := Aggregate(ctx, packages, versions, s.counters, s.now())
	if err != nil {
		return nil, s.fail(span, err)
	}

	span.SetAttributes(
		attribute.Int("stats.months", len(payload.Months)),
		attribute.Bool("stats.downloads_available", payload.DownloadsTotal.Available),
	)

	if derr := payload.DownloadsError(); derr != nil {
		observability.FromContext(ctx, s.logger).WithError(derr).Warn("Counter store unavailable, serving statistics without downloads")
		span.AddEvent("counter store unavailable")
		if s.metrics != nil {
			s.metrics.CounterStoreDegradedTotal.Inc()
		}
	}

	if s.metrics != nil {
		s.metrics.PackagesTotal.Set(float64(payload.PackagesTotal))
		s.metrics.VersionsTotal.Set(float64(payload.VersionsTotal))
		if payload.DownloadsTotal.Available {
			s.metrics.DownloadsTotal.Set(float64(payload.DownloadsTotal.Value))
		}
	}

	return payload, nil
}

// Totals returns the overall download, package and version counts. Unlike Dashboard, a
// counter store failure is an error here since every total must be an integer.
func (s *Service) Totals(ctx context.Context) (*TotalsResponse, error) {
	if !s.flags.IsEnabled(FlagDownloads) {
		return nil, ErrFeatureDisabled
	}

	ctx, span := tracer.Start(ctx, "stats.Totals")
	defer span.End()

	downloads, err := s.counters.GetScalar(ctx, TotalDownloadsKey)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("get download total: %w", err))
	}
	packages, err := s.source.GetTotalCount(ctx, EntityPackage)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("get package total: %w", err))
	}
	versions, err := s.source.GetTotalCount(ctx, EntityVersion)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("get version total: %w", err))
	}

	return &TotalsResponse{Totals: Totals{
		Downloads: downloads,
		Packages:  packages,
		Versions:  versions,
	}}, nil
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
