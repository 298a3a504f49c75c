package stats

import "time"

const (
	// DownloadsStartDate is the first day download counters were recorded
	DownloadsStartDate = "2012-04-13"

	// TotalDownloadsKey holds the all-time download count
	TotalDownloadsKey = "downloads"

	downloadsKeyPrefix = "downloads:"
	dailyWindowDays    = 30
)

// DailyKey returns the counter key for the day containing t
func DailyKey(t time.Time) string {
	return downloadsKeyPrefix + t.Format("20060102")
}

// MonthlyKey returns the counter key for the month containing t
func MonthlyKey(t time.Time) string {
	return downloadsKeyPrefix + t.Format("200601")
}

// DownloadKeys lists the counter keys for both download charts, each aligned with its labels
type DownloadKeys struct {
	DailyLabels   []string
	DailyKeys     []string
	MonthlyLabels []string
	MonthlyKeys   []string
}

// BuildDownloadKeys walks every calendar day from DownloadsStartDate through the day containing
// now, in now's location. Every month touched gets one monthly key; only the trailing 30 days
// (today included) get a daily key.
func BuildDownloadKeys(now time.Time) DownloadKeys {
	// Days are stepped as UTC dates so a DST gap at local midnight cannot shift the walk.
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dailyStart := today.AddDate(0, 0, -dailyWindowDays)

	start, _ := time.Parse("2006-01-02", DownloadsStartDate)

	var keys DownloadKeys
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		if day.After(dailyStart) {
			keys.DailyLabels = append(keys.DailyLabels, day.Format("2006-01-02"))
			keys.DailyKeys = append(keys.DailyKeys, DailyKey(day))
		}

		monthly := MonthlyKey(day)
		if n := len(keys.MonthlyKeys); n == 0 || keys.MonthlyKeys[n-1] != monthly {
			keys.MonthlyLabels = append(keys.MonthlyLabels, day.Format("2006-01"))
			keys.MonthlyKeys = append(keys.MonthlyKeys, monthly)
		}
	}
	return keys
}
