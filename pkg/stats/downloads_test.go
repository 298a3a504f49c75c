package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKeys = DownloadKeys{
	DailyLabels:   []string{"2020-04-14", "2020-04-15"},
	DailyKeys:     []string{"downloads:20200414", "downloads:20200415"},
	MonthlyLabels: []string{"2020-03", "2020-04"},
	MonthlyKeys:   []string{"downloads:202003", "downloads:202004"},
}

func TestReadDownloads(t *testing.T) {
	store := &fakeCounters{values: map[string]int64{
		"downloads":          1000,
		"downloads:20200414": 12,
		"downloads:202003":   300,
		"downloads:202004":   90,
	}}

	got := ReadDownloads(context.Background(), store, testKeys)

	require.True(t, got.Available())
	assert.Equal(t, DownloadsTotal{Value: 1000, Available: true}, got.Total)
	assert.Equal(t, &Chart{Labels: testKeys.DailyLabels, Values: []int64{12, 0}}, got.Daily)
	assert.Equal(t, &Chart{Labels: testKeys.MonthlyLabels, Values: []int64{300, 90}}, got.Monthly)
	assert.Equal(t, 1, store.scalarCalls)
	assert.Equal(t, 2, store.batchCalls)
}

func TestReadDownloads_AllOrNothing(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeCounters
	}{
		{name: "scalar fails", store: &fakeCounters{failScalar: true}},
		{name: "daily batch fails", store: &fakeCounters{failBatch: 1}},
		{name: "monthly batch fails", store: &fakeCounters{failBatch: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.store.values = map[string]int64{"downloads": 5, "downloads:202004": 1}

			got := ReadDownloads(context.Background(), tt.store, testKeys)

			assert.False(t, got.Available())
			assert.ErrorIs(t, got.Err, errConnRefused)
			assert.False(t, got.Total.Available)
			assert.Nil(t, got.Daily)
			assert.Nil(t, got.Monthly)
		})
	}
}

func TestReadDownloads_StopsAtFirstFailure(t *testing.T) {
	store := &fakeCounters{failScalar: true}

	ReadDownloads(context.Background(), store, testKeys)

	assert.Equal(t, 1, store.scalarCalls)
	assert.Zero(t, store.batchCalls)
}

type shortBatchStore struct{ fakeCounters }

func (s *shortBatchStore) GetBatch(ctx context.Context, keys []string) ([]int64, error) {
	return []int64{1}, nil
}

func TestReadDownloads_MisalignedBatch(t *testing.T) {
	got := ReadDownloads(context.Background(), &shortBatchStore{}, testKeys)

	assert.False(t, got.Available())
	assert.Contains(t, got.Err.Error(), "1 values for 2 keys")
}

func TestChartMax(t *testing.T) {
	var nilChart *Chart
	_, ok := nilChart.Max()
	assert.False(t, ok)

	_, ok = (&Chart{}).Max()
	assert.False(t, ok)

	peak, ok := (&Chart{Values: []int64{3, 9, 4}}).Max()
	assert.True(t, ok)
	assert.Equal(t, int64(9), peak)
}
