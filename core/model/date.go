package model

import "time"

// DateKeyFormat is the wire format for calendar-day keys.
const DateKeyFormat = "2006-01-02"

// Day truncates t to its calendar day at UTC midnight. All scheduling
// arithmetic operates on day-granular UTC timestamps.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey renders t as an ISO calendar-day key.
func DateKey(t time.Time) string {
	return Day(t).Format(DateKeyFormat)
}

// ParseDateKey parses an ISO calendar-day key into a UTC midnight timestamp.
func ParseDateKey(s string) (time.Time, error) {
	return time.ParseInLocation(DateKeyFormat, s, time.UTC)
}

// StartOfDay is the timestamp rendered as planned_start for a first
// allocation day.
func StartOfDay(t time.Time) time.Time {
	return Day(t)
}

// EndOfDay is the timestamp rendered as planned_end for a last allocation
// day.
func EndOfDay(t time.Time) time.Time {
	return Day(t).AddDate(0, 0, 1).Add(-time.Second)
}
