// File: utils/dates.go
package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used everywhere at the service
// boundary. Dates are timezone-naive: the whole system runs on the bakery's
// local civil calendar.
const DateLayout = "2006-01-02"

// ParseDate parses a strict "YYYY-MM-DD" string into a midnight-normalized
// time in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders a time as a "YYYY-MM-DD" string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Midnight truncates a wall-clock time to midnight in its own location.
// Date comparisons must go through this; comparing raw wall-clock times
// makes "today" look like the past for most of the day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b, inclusive.
// Both inputs must already be midnight-normalized.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours()/24) + 1
}
