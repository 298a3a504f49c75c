package stats

// ProjectCumulative converts ascending per-month counts into running totals aligned to axis.
//
// Counts for months that are not on the axis are skipped entirely and do not contribute to
// the running total. Axis months without a count carry the previous total forward, so months
// before the first count stay at 0 and trailing months repeat the final total.
func ProjectCumulative(counts []MonthlyCount, axis []string) []int64 {
	series := make([]int64, len(axis))
	if len(axis) == 0 {
		return series
	}

	index := make(map[string]int, len(axis))
	for i, label := range axis {
		index[label] = i
	}

	recorded := make([]bool, len(axis))
	var sum int64
	for _, c := range counts {
		i, ok := index[c.YearMonth().String()]
		if !ok {
			continue
		}
		sum += c.Count
		series[i] = sum
		recorded[i] = true
	}

	var last int64
	for i := range series {
		if recorded[i] {
			last = series[i]
			continue
		}
		series[i] = last
	}
	return series
}

// lastValue returns the final element of a series, or 0 for an empty one
func lastValue(series []int64) int64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}
