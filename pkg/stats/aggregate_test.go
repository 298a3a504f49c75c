package stats

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	examplePackages = []MonthlyCount{{2020, 1, 10}, {2020, 2, 5}}
	exampleVersions = []MonthlyCount{{2019, 12, 3}, {2020, 1, 2}}
	exampleNow      = time.Date(2020, 4, 15, 9, 0, 0, 0, time.UTC)
)

func TestAggregate(t *testing.T) {
	store := &fakeCounters{values: map[string]int64{
		"downloads":          4200,
		"downloads:20200401": 7,
		"downloads:20200415": 11,
		"downloads:202003":   80,
		"downloads:201204":   3,
	}}

	payload, err := Aggregate(context.Background(), examplePackages, exampleVersions, store, exampleNow)

	require.NoError(t, err)
	assert.Equal(t, []string{"2020-01", "2020-02", "2020-03", "2020-04"}, payload.Months)
	assert.Equal(t, []int64{10, 15, 15, 15}, payload.Packages)
	assert.Equal(t, []int64{2, 2, 2, 2}, payload.Versions)
	assert.Equal(t, int64(15), payload.PackagesTotal)
	assert.Equal(t, int64(2), payload.VersionsTotal)
	assert.Equal(t, DownloadsTotal{Value: 4200, Available: true}, payload.DownloadsTotal)
	assert.Equal(t, DownloadsStartDate, payload.DownloadsStartDate)
	assert.NoError(t, payload.DownloadsError())

	require.NotNil(t, payload.DownloadsChart)
	assert.Len(t, payload.DownloadsChart.Labels, 30)
	require.NotNil(t, payload.MaxDailyDownloads)
	assert.Equal(t, int64(11), *payload.MaxDailyDownloads)

	require.NotNil(t, payload.DownloadsChartMonthly)
	assert.Equal(t, "2012-04", payload.DownloadsChartMonthly.Labels[0])
	assert.Equal(t, int64(3), payload.DownloadsChartMonthly.Values[0])
	require.NotNil(t, payload.MaxMonthlyDownloads)
	assert.Equal(t, int64(80), *payload.MaxMonthlyDownloads)
}

func TestAggregate_CounterStoreDown(t *testing.T) {
	store := &fakeCounters{failScalar: true}

	payload, err := Aggregate(context.Background(), examplePackages, exampleVersions, store, exampleNow)

	require.NoError(t, err)
	assert.Equal(t, int64(15), payload.PackagesTotal)
	assert.Equal(t, int64(2), payload.VersionsTotal)
	assert.False(t, payload.DownloadsTotal.Available)
	assert.Nil(t, payload.DownloadsChart)
	assert.Nil(t, payload.DownloadsChartMonthly)
	assert.Nil(t, payload.MaxDailyDownloads)
	assert.Nil(t, payload.MaxMonthlyDownloads)
	assert.ErrorIs(t, payload.DownloadsError(), errConnRefused)
}

func TestAggregate_PartialStoreFailureDiscardsEverything(t *testing.T) {
	store := &fakeCounters{
		values:    map[string]int64{"downloads": 4200},
		failBatch: 2,
	}

	payload, err := Aggregate(context.Background(), examplePackages, exampleVersions, store, exampleNow)

	require.NoError(t, err)
	assert.Equal(t, Unavailable, payload.DownloadsTotal.String())
	assert.Nil(t, payload.DownloadsChart)
	assert.Nil(t, payload.DownloadsChartMonthly)
}

func TestAggregate_EmptyVersions(t *testing.T) {
	payload, err := Aggregate(context.Background(), examplePackages, nil, &fakeCounters{}, exampleNow)

	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0, 0, 0}, payload.Versions)
	assert.Zero(t, payload.VersionsTotal)
}

func TestAggregate_EmptyPackages(t *testing.T) {
	store := &fakeCounters{}

	_, err := Aggregate(context.Background(), nil, exampleVersions, store, exampleNow)

	assert.ErrorIs(t, err, ErrEmptyAnchorSeries)
	assert.Zero(t, store.scalarCalls)
}

func TestAggregate_AnchorAfterNow(t *testing.T) {
	packages := []MonthlyCount{{2020, 6, 1}}

	payload, err := Aggregate(context.Background(), packages, nil, &fakeCounters{}, exampleNow)

	require.NoError(t, err)
	assert.Empty(t, payload.Months)
	assert.Zero(t, payload.PackagesTotal)
}

func TestChartPayload_JSON(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		store := &fakeCounters{values: map[string]int64{"downloads": 42}}
		payload, err := Aggregate(context.Background(), examplePackages, exampleVersions, store, exampleNow)
		require.NoError(t, err)

		body, err := json.Marshal(payload)
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &decoded))
		assert.Equal(t, float64(42), decoded["downloads"])
		assert.Equal(t, "2012-04-13", decoded["downloadsStartDate"])
		assert.Equal(t, float64(15), decoded["packagesTotal"])
		assert.Equal(t, float64(0), decoded["maxDailyDownloads"])
		assert.IsType(t, map[string]interface{}{}, decoded["downloadsChart"])
	})

	t.Run("unavailable", func(t *testing.T) {
		payload, err := Aggregate(context.Background(), examplePackages, exampleVersions, &fakeCounters{failScalar: true}, exampleNow)
		require.NoError(t, err)

		body, err := json.Marshal(payload)
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &decoded))
		assert.Equal(t, "unavailable", decoded["downloads"])
		assert.Nil(t, decoded["downloadsChart"])
		assert.Nil(t, decoded["downloadsChartMonthly"])
		assert.Nil(t, decoded["maxDailyDownloads"])
		assert.Nil(t, decoded["maxMonthlyDownloads"])
		assert.NotContains(t, string(body), "downloadsErr")
	})
}
