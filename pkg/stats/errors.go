package stats

import "errors"

var (
	// ErrFeatureDisabled is returned when the downloads killswitch is off
	ErrFeatureDisabled = errors.New("statistics are temporarily disabled")

	// ErrEmptyAnchorSeries is returned when there are no package counts to anchor the month axis
	ErrEmptyAnchorSeries = errors.New("no package counts to build the month axis from")
)
