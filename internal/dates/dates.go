// Package dates handles the calendar-day arithmetic behind login and
// quiz streaks. Dates are plain "2006-01-02" strings compared at UTC
// midnight, so day differences are exact whole numbers regardless of
// timezone or DST transitions.
package dates

import "time"

const Layout = "2006-01-02"

// Day formats t as a calendar date, discarding the time of day.
func Day(t time.Time) string {
	return t.UTC().Format(Layout)
}

// DaysBetween returns the whole-day difference to - from. Both
// arguments must be Layout-formatted dates.
func DaysBetween(from, to string) (int, error) {
	a, err := time.ParseInLocation(Layout, from, time.UTC)
	if err != nil {
		return 0, err
	}
	b, err := time.ParseInLocation(Layout, to, time.UTC)
	if err != nil {
		return 0, err
	}
	return int(b.Sub(a).Hours() / 24), nil
}
