package domain

import "time"

// DateLayout is the wire and storage layout of day-precision dates.
const DateLayout = "2006-01-02"

// Date returns the UTC midnight of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates t to its calendar day, keeping the day t shows in its own location.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return Date(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
