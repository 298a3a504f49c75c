package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// EntityKind selects which registry entity is being counted
type EntityKind string

const (
	EntityPackage EntityKind = "package"
	EntityVersion EntityKind = "version"
)

// YearMonth identifies a calendar month
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the calendar month containing t
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// String formats the month as YYYY-MM
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Next returns the following calendar month
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Before reports whether ym is strictly earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// monthsSince returns the number of whole months from start to ym (negative if ym is earlier)
func (ym YearMonth) monthsSince(start YearMonth) int {
	return (ym.Year-start.Year)*12 + int(ym.Month) - int(start.Month)
}

// MonthlyCount is the number of entities created in one calendar month
type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// YearMonth returns the month the count belongs to
func (c MonthlyCount) YearMonth() YearMonth {
	return YearMonth{Year: c.Year, Month: time.Month(c.Month)}
}

// Chart is a labelled data set for the download graphs
type Chart struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

// Max returns the largest value in the chart, or false if it has none
func (c *Chart) Max() (int64, bool) {
	if c == nil || len(c.Values) == 0 {
		return 0, false
	}
	peak := c.Values[0]
	for _, v := range c.Values[1:] {
		if v > peak {
			peak = v
		}
	}
	return peak, true
}

// Unavailable is rendered in place of the downloads total when the counter store is down
const Unavailable = "unavailable"

// DownloadsTotal is either a download count or the "unavailable" marker
type DownloadsTotal struct {
	Value     int64
	Available bool
}

// MarshalJSON encodes an integer, or the string "unavailable"
func (d DownloadsTotal) MarshalJSON() ([]byte, error) {
	if !d.Available {
		return json.Marshal(Unavailable)
	}
	return json.Marshal(d.Value)
}

// String renders the total for display
func (d DownloadsTotal) String() string {
	if !d.Available {
		return Unavailable
	}
	return fmt.Sprintf("%d", d.Value)
}

// ChartPayload is everything the statistics dashboard renders
type ChartPayload struct {
	Months   []string `json:"months"`
	Packages []int64  `json:"packages"`
	Versions []int64  `json:"versions"`

	PackagesTotal  int64          `json:"packagesTotal"`
	VersionsTotal  int64          `json:"versionsTotal"`
	DownloadsTotal DownloadsTotal `json:"downloads"`

	DownloadsChart        *Chart `json:"downloadsChart"`
	MaxDailyDownloads     *int64 `json:"maxDailyDownloads"`
	DownloadsChartMonthly *Chart `json:"downloadsChartMonthly"`
	MaxMonthlyDownloads   *int64 `json:"maxMonthlyDownloads"`

	DownloadsStartDate string `json:"downloadsStartDate"`

	downloadsErr error
}

// Totals is the body of the statistics.json endpoint
type Totals struct {
	Downloads int64 `json:"downloads"`
	Packages  int64 `json:"packages"`
	Versions  int64 `json:"versions"`
}

// TotalsResponse wraps Totals under a "totals" key
type TotalsResponse struct {
	Totals Totals `json:"totals"`
}

// Source provides per-month and overall counts from the relational store
type Source interface {
	// GetMonthlyCounts returns counts ordered ascending by year and month
	GetMonthlyCounts(ctx context.Context, kind EntityKind) ([]MonthlyCount, error)
	GetTotalCount(ctx context.Context, kind EntityKind) (int64, error)
}

// CounterStore reads integer counters from the key-value store
type CounterStore interface {
	// GetScalar returns 0 for a missing key
	GetScalar(ctx context.Context, key string) (int64, error)
	// GetBatch fetches all keys in a single round trip; the result is aligned with keys
	GetBatch(ctx context.Context, keys []string) ([]int64, error)
}

// FeatureFlags reports whether a feature area is switched on
type FeatureFlags interface {
	IsEnabled(name string) bool
}
