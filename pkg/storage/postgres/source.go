package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/platinummonkey/regstats/pkg/observability"
	"github.com/platinummonkey/regstats/pkg/stats"
)

// Source answers the aggregate count queries behind the statistics dashboard
type Source struct {
	db      *sql.DB
	metrics *observability.Metrics
}

// NewSource creates a new aggregate source
func NewSource(db *sql.DB) *Source {
	return &Source{db: db}
}

// WithMetrics records every query on m
func (s *Source) WithMetrics(m *observability.Metrics) *Source {
	s.metrics = m
	return s
}

// tableFor maps an entity kind to its table; table names are never taken from input
func tableFor(kind stats.EntityKind) (string, error) {
	switch kind {
	case stats.EntityPackage:
		return "packages", nil
	case stats.EntityVersion:
		return "versions", nil
	default:
		return "", fmt.Errorf("unknown entity kind %q", kind)
	}
}

// GetMonthlyCounts returns how many entities were created in each month, oldest first.
// Months with no entities are absent.
func (s *Source) GetMonthlyCounts(ctx context.Context, kind stats.EntityKind) (counts []stats.MonthlyCount, err error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { s.metrics.ObserveSourceQuery("monthly_counts", string(kind), start, err) }()

	query := fmt.Sprintf(`
		SELECT
			EXTRACT(YEAR FROM created_at)::int AS year,
			EXTRACT(MONTH FROM created_at)::int AS month,
			COUNT(*) AS count
		FROM %s
		GROUP BY 1, 2
		ORDER BY 1, 2
	`, table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query monthly %s counts: %w", kind, err)
	}
	defer rows.Close()

	counts = make([]stats.MonthlyCount, 0)
	for rows.Next() {
		var c stats.MonthlyCount
		if err := rows.Scan(&c.Year, &c.Month, &c.Count); err != nil {
			return nil, fmt.Errorf("scan monthly %s count: %w", kind, err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly %s counts: %w", kind, err)
	}

	return counts, nil
}

// GetTotalCount returns the total number of entities of the given kind
func (s *Source) GetTotalCount(ctx context.Context, kind stats.EntityKind) (total int64, err error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	defer func() { s.metrics.ObserveSourceQuery("total", string(kind), start, err) }()

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return total, nil
}
