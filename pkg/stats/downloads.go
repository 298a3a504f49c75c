package stats

import (
	"context"
	"fmt"
)

// DownloadStats is the outcome of one read attempt against the counter store.
// Either every field is populated or Err is set and the charts are nil.
type DownloadStats struct {
	Total   DownloadsTotal
	Daily   *Chart
	Monthly *Chart
	Err     error
}

// Available reports whether the counter store answered every read
func (d DownloadStats) Available() bool {
	return d.Err == nil
}

// ReadDownloads fetches the total and both chart batches as a single unit. The first failing
// read aborts the attempt and nothing read so far is kept. No read is retried.
func ReadDownloads(ctx context.Context, store CounterStore, keys DownloadKeys) DownloadStats {
	total, err := store.GetScalar(ctx, TotalDownloadsKey)
	if err != nil {
		return unavailable(fmt.Errorf("read %s: %w", TotalDownloadsKey, err))
	}

	daily, err := readChart(ctx, store, keys.DailyLabels, keys.DailyKeys)
	if err != nil {
		return unavailable(fmt.Errorf("read daily downloads: %w", err))
	}

	monthly, err := readChart(ctx, store, keys.MonthlyLabels, keys.MonthlyKeys)
	if err != nil {
		return unavailable(fmt.Errorf("read monthly downloads: %w", err))
	}

	return DownloadStats{
		Total:   DownloadsTotal{Value: total, Available: true},
		Daily:   daily,
		Monthly: monthly,
	}
}

func readChart(ctx context.Context, store CounterStore, labels, keys []string) (*Chart, error) {
	values, err := store.GetBatch(ctx, keys)
	if err != nil {
		return nil, err
	}
	if len(values) != len(keys) {
		return nil, fmt.Errorf("counter store returned %d values for %d keys", len(values), len(keys))
	}
	return &Chart{Labels: labels, Values: values}, nil
}

func unavailable(err error) DownloadStats {
	return DownloadStats{Err: err}
}
