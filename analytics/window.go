// api/analytics/window.go
package analytics

import "time"

// maxTrendDays caps the daily trend series; a 90d window still only emits
// the most recent 30 daily buckets.
const maxTrendDays = 30

const DefaultPeriod = "7d"

var periodDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// ResolvePeriod normalizes a period token. Unrecognized tokens (including
// the empty string) fall back to the 7-day default rather than erroring.
func ResolvePeriod(period string) string {
	if _, ok := periodDays[period]; !ok {
		return DefaultPeriod
	}
	return period
}

// DayBucket is one calendar day of the trend series, UTC midnight to
// midnight. End is inclusive.
type DayBucket struct {
	Date  string // ISO calendar date, 2006-01-02
	Start time.Time
	End   time.Time
}

// Window is the resolved time range for a period token.
type Window struct {
	Period string
	Start  time.Time
	Days   []DayBucket
}

// ResolveWindow maps a period token and a reference instant to the window's
// start and its day buckets. Start keeps the time-of-day of now (now minus N
// whole days); only the trend buckets are midnight-aligned.
func ResolveWindow(period string, now time.Time) Window {
	period = ResolvePeriod(period)
	days := periodDays[period]

	now = now.UTC()
	w := Window{
		Period: period,
		Start:  now.AddDate(0, 0, -days),
	}

	trendDays := days
	if trendDays > maxTrendDays {
		trendDays = maxTrendDays
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for i := trendDays - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		w.Days = append(w.Days, DayBucket{
			Date:  start.Format("2006-01-02"),
			Start: start,
			End:   start.AddDate(0, 0, 1).Add(-time.Nanosecond),
		})
	}

	return w
}
