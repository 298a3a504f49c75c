package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAxis(t *testing.T) {
	now := time.Date(2020, 4, 15, 12, 0, 0, 0, time.UTC)

	axis, err := BuildAxis([]MonthlyCount{{Year: 2020, Month: 1, Count: 10}, {Year: 2020, Month: 2, Count: 5}}, now)

	require.NoError(t, err)
	assert.Equal(t, []string{"2020-01", "2020-02", "2020-03", "2020-04"}, axis)
}

func TestBuildAxis_CrossesYearBoundary(t *testing.T) {
	now := time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)

	axis, err := BuildAxis([]MonthlyCount{{Year: 2020, Month: 11, Count: 1}}, now)

	require.NoError(t, err)
	assert.Equal(t, []string{"2020-11", "2020-12", "2021-01", "2021-02"}, axis)
}

func TestBuildAxis_AnchorInCurrentMonth(t *testing.T) {
	now := time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)

	axis, err := BuildAxis([]MonthlyCount{{Year: 2020, Month: 4, Count: 3}}, now)

	require.NoError(t, err)
	assert.Equal(t, []string{"2020-04"}, axis)
}

func TestBuildAxis_AnchorAfterNow(t *testing.T) {
	now := time.Date(2020, 4, 15, 0, 0, 0, 0, time.UTC)

	axis, err := BuildAxis([]MonthlyCount{{Year: 2020, Month: 6, Count: 3}}, now)

	require.NoError(t, err)
	assert.Empty(t, axis)
}

func TestBuildAxis_EmptyPackages(t *testing.T) {
	_, err := BuildAxis(nil, time.Now())
	assert.ErrorIs(t, err, ErrEmptyAnchorSeries)
}

func TestBuildAxis_StepsOneMonth(t *testing.T) {
	now := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	start := MonthlyCount{Year: 2012, Month: 4, Count: 1}

	axis, err := BuildAxis([]MonthlyCount{start}, now)
	require.NoError(t, err)

	// April 2012 through March 2024 inclusive
	assert.Len(t, axis, 12*12)
	assert.Equal(t, "2012-04", axis[0])
	assert.Equal(t, "2024-03", axis[len(axis)-1])

	seen := make(map[string]bool, len(axis))
	for i, label := range axis {
		assert.False(t, seen[label], "duplicate label %s", label)
		seen[label] = true

		if i == 0 {
			continue
		}
		prev, err := time.Parse("2006-01", axis[i-1])
		require.NoError(t, err)
		cur, err := time.Parse("2006-01", label)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 1, 0), cur)
	}
}

func TestYearMonth(t *testing.T) {
	assert.Equal(t, "2019-12", YearMonth{Year: 2019, Month: time.December}.String())
	assert.Equal(t, YearMonth{Year: 2020, Month: time.January}, YearMonth{Year: 2019, Month: time.December}.Next())
	assert.True(t, YearMonth{Year: 2019, Month: time.December}.Before(YearMonth{Year: 2020, Month: time.January}))
	assert.False(t, YearMonth{Year: 2020, Month: time.January}.Before(YearMonth{Year: 2020, Month: time.January}))
	assert.Equal(t, 13, YearMonth{Year: 2021, Month: time.February}.monthsSince(YearMonth{Year: 2020, Month: time.January}))
}
