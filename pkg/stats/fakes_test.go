package stats

import (
	"context"
	"errors"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

// fakeCounters is an in-memory CounterStore. failBatch makes the n-th GetBatch call (1-based)
// fail; failScalar makes every GetScalar call fail.
type fakeCounters struct {
	values      map[string]int64
	failScalar  bool
	failBatch   int
	scalarCalls int
	batchCalls  int
}

func (f *fakeCounters) GetScalar(ctx context.Context, key string) (int64, error) {
	f.scalarCalls++
	if f.failScalar {
		return 0, errConnRefused
	}
	return f.values[key], nil
}

func (f *fakeCounters) GetBatch(ctx context.Context, keys []string) ([]int64, error) {
	f.batchCalls++
	if f.failBatch == f.batchCalls {
		return nil, errConnRefused
	}
	out := make([]int64, len(keys))
	for i, k := range keys {
		out[i] = f.values[k]
	}
	return out, nil
}

type fakeSource struct {
	monthly map[EntityKind][]MonthlyCount
	totals  map[EntityKind]int64
	err     error
}

func (f *fakeSource) GetMonthlyCounts(ctx context.Context, kind EntityKind) ([]MonthlyCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.monthly[kind], nil
}

func (f *fakeSource) GetTotalCount(ctx context.Context, kind EntityKind) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.totals[kind], nil
}

type staticFlags map[string]bool

func (f staticFlags) IsEnabled(name string) bool {
	enabled, ok := f[name]
	return !ok || enabled
}
