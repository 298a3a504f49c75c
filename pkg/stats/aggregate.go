package stats

import (
	"context"
	"time"
)

// Aggregate assembles the dashboard payload from the package and version monthly counts and
// the download counters. Counter store failures degrade the download fields and are reported
// through ChartPayload.DownloadsError; only a missing package series is an error.
func Aggregate(ctx context.Context, packages, versions []MonthlyCount, counters CounterStore, now time.Time) (*ChartPayload, error) {
	months, err := BuildAxis(packages, now)
	if err != nil {
		return nil, err
	}

	payload := &ChartPayload{
		Months:             months,
		Packages:           ProjectCumulative(packages, months),
		Versions:           ProjectCumulative(versions, months),
		DownloadsStartDate: DownloadsStartDate,
	}
	payload.PackagesTotal = lastValue(payload.Packages)
	payload.VersionsTotal = lastValue(payload.Versions)

	downloads := ReadDownloads(ctx, counters, BuildDownloadKeys(now))
	payload.applyDownloads(downloads)

	return payload, nil
}

func (p *ChartPayload) applyDownloads(d DownloadStats) {
	if !d.Available() {
		p.DownloadsTotal = DownloadsTotal{}
		p.downloadsErr = d.Err
		return
	}

	p.DownloadsTotal = d.Total
	p.DownloadsChart = d.Daily
	p.DownloadsChartMonthly = d.Monthly
	if peak, ok := d.Daily.Max(); ok {
		p.MaxDailyDownloads = &peak
	}
	if peak, ok := d.Monthly.Max(); ok {
		p.MaxMonthlyDownloads = &peak
	}
}

// DownloadsError returns why the download fields are unavailable, or nil
func (p *ChartPayload) DownloadsError() error {
	return p.downloadsErr
}
