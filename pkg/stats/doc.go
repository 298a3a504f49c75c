// Package stats builds the registry usage statistics shown on the public dashboard.
//
// # Overview
//
// The package turns per-month creation counts (from the relational store) and the download
// counters (from the counter store) into chart-ready, gap-filled cumulative series and totals.
// It performs no I/O of its own: the aggregate source, the counter store and the feature flag
// are consumed through the Source, CounterStore and FeatureFlags interfaces.
//
// # Building Blocks
//
//   - BuildAxis: the month axis from the first package month through the current month
//   - ProjectCumulative: running totals aligned to the axis, carried forward over empty months
//   - BuildDownloadKeys: the daily and monthly download counter keys since DownloadsStartDate
//   - ReadDownloads: one all-or-nothing attempt against the counter store
//   - Aggregate: all of the above combined into a ChartPayload
//
// # Usage Example
//
//	svc := stats.NewService(source, counters, flags, logger)
//	payload, err := svc.Dashboard(ctx)
//	if errors.Is(err, stats.ErrFeatureDisabled) {
//		// render the "temporarily disabled" page
//	}
//
// When the counter store cannot be reached the payload is still returned: the downloads total
// becomes "unavailable" and both download charts are omitted.
//
// # Related Packages
//
//   - pkg/storage: Postgres aggregate source and Redis counter store
//   - pkg/killswitch: feature flags
package stats
