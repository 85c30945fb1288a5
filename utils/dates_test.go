package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2025-06-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), day)

	for _, bad := range []string{"", "10-06-2025", "2025/06/10", "2025-6-1", "June 10 2025", "2025-06-10T00:00:00Z"} {
		_, err := ParseDate(bad, time.UTC)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	late := time.Date(2025, 6, 10, 23, 45, 12, 999, loc)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, loc), Midnight(late))
	assert.Equal(t, loc, Midnight(late).Location())
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, a))
	assert.Equal(t, 61, DaysBetween(a, a.AddDate(0, 0, 60)))
}

func TestFormatDateRoundTrip(t *testing.T) {
	day, err := ParseDate("2025-12-31", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", FormatDate(day))
}
