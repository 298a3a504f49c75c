package stats

import "time"

// BuildAxis returns one YYYY-MM label per calendar month from the month of the first package
// count through the month containing now, inclusive. An anchor later than now yields an empty axis.
func BuildAxis(packages []MonthlyCount, now time.Time) ([]string, error) {
	if len(packages) == 0 {
		return nil, ErrEmptyAnchorSeries
	}

	start := packages[0].YearMonth()
	end := YearMonthOf(now)
	if end.Before(start) {
		return []string{}, nil
	}

	axis := make([]string, 0, end.monthsSince(start)+1)
	for ym := start; !end.Before(ym); ym = ym.Next() {
		axis = append(axis, ym.String())
	}
	return axis, nil
}
