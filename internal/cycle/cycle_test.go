package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name  string
		start string
		n     int
		want  string
	}{
		{"leap year clamp", "2024-01-31", 1, "2024-02-29"},
		{"non-leap clamp", "2023-01-31", 1, "2023-02-28"},
		{"no clamp needed", "2024-01-15", 1, "2024-02-15"},
		{"clamp to 30-day month", "2024-03-31", 1, "2024-04-30"},
		{"day preserved across short month", "2024-01-31", 2, "2024-03-31"},
		{"zero months", "2024-06-10", 0, "2024-06-10"},
		{"backwards", "2024-03-31", -1, "2024-02-29"},
		{"backwards preserves day", "2024-03-31", -2, "2024-01-31"},
		{"year boundary", "2023-11-30", 3, "2024-02-29"},
		{"many months", "2024-01-31", 12, "2025-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonthsClamped(date(tt.start), tt.n)
			assert.Equal(t, date(tt.want), got)
		})
	}
}

func TestAddMonthsClampedPreservesClock(t *testing.T) {
	start := time.Date(2024, time.January, 31, 13, 45, 12, 500, time.UTC)
	got := AddMonthsClamped(start, 1)
	assert.Equal(t, time.Date(2024, time.February, 29, 13, 45, 12, 500, time.UTC), got)
}

func TestRangeTodayAfterStartDay(t *testing.T) {
	// Start day 10, today the 15th: the cycle started this month.
	w := Range(date("2024-03-15"), 10, 0)
	assert.Equal(t, date("2024-03-10"), w.Start)
	assert.Equal(t, date("2024-04-10").Add(-time.Nanosecond), w.End)
}

func TestRangeTodayBeforeStartDay(t *testing.T) {
	// Start day 10, today the 5th: the cycle started last month.
	w := Range(date("2024-03-05"), 10, 0)
	assert.Equal(t, date("2024-02-10"), w.Start)
	assert.Equal(t, date("2024-03-10").Add(-time.Nanosecond), w.End)
}

func TestRangeOnStartDay(t *testing.T) {
	w := Range(date("2024-03-10"), 10, 0)
	assert.Equal(t, date("2024-03-10"), w.Start)
}

func TestRangeClampsShortMonth(t *testing.T) {
	// Start day 31: April clamps to the 30th once the month is reached.
	w := Range(date("2024-04-30"), 30, 0)
	assert.Equal(t, date("2024-04-30"), w.Start)

	// Mid-April with start day 31 belongs to the cycle that began March 31;
	// the previous month keeps the configured day when it has one.
	w = Range(date("2024-04-15"), 31, 0)
	assert.Equal(t, date("2024-03-31"), w.Start)

	// February never reaches day 31, so the whole month belongs to the
	// cycle anchored on January 31.
	w = Range(date("2024-02-29"), 31, 0)
	assert.Equal(t, date("2024-01-31"), w.Start)
}

func TestRangeOffsetPagesBack(t *testing.T) {
	current := Range(date("2024-03-15"), 10, 0)
	previous := Range(date("2024-03-15"), 10, 1)

	assert.Equal(t, date("2024-02-10"), previous.Start)
	// Consecutive windows tile: previous ends where current begins.
	assert.Equal(t, current.Start, previous.End.Add(time.Nanosecond))
}

func TestRangeContiguityAcrossOffsets(t *testing.T) {
	today := date("2024-07-20")
	for _, day := range []int{1, 5, 15, 28} {
		for offset := 1; offset <= 12; offset++ {
			older := Range(today, day, offset)
			newer := Range(today, day, offset-1)
			require.Equal(t, newer.Start, older.End.Add(time.Nanosecond),
				"day %d offset %d: windows must tile", day, offset)
			require.True(t, older.End.Before(newer.Start), "windows must not overlap")
		}
	}
}

func TestRangeEndDerivedFromStart(t *testing.T) {
	for _, day := range []int{1, 10, 31} {
		w := Range(date("2024-01-20"), day, 0)
		assert.Equal(t, AddMonthsClamped(w.Start, 1).Add(-time.Nanosecond), w.End)
	}
}

func TestRangeIgnoresTodayZone(t *testing.T) {
	// Stored dates are midnight UTC; a window built from a western-zone
	// "now" must still contain them. Zone-local midnight (Mar 1 00:00-05:00
	// is 05:00Z) would push the start past a first-day expense.
	western := time.Date(2024, time.March, 15, 8, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	w := Range(western, 1, 0)

	assert.Equal(t, date("2024-03-01"), w.Start)
	assert.Equal(t, time.UTC, w.Start.Location())
	assert.True(t, w.Contains(date("2024-03-01")), "first-day expense is inside")
	assert.True(t, w.Contains(date("2024-03-31")))
	assert.False(t, w.Contains(date("2024-04-01")), "day after the cycle end stays outside")

	eastern := time.Date(2024, time.March, 15, 22, 0, 0, 0, time.FixedZone("UTC+9", 9*3600))
	assert.Equal(t, w, Range(eastern, 1, 0), "same calendar date, same window, any zone")
}

func TestWindowContains(t *testing.T) {
	w := Range(date("2024-03-15"), 1, 0)

	assert.True(t, w.Contains(date("2024-03-01")), "start boundary is inclusive")
	assert.True(t, w.Contains(date("2024-03-31")), "last day is inside")
	assert.False(t, w.Contains(date("2024-04-01")), "next cycle start is outside")
	assert.False(t, w.Contains(date("2024-02-29")), "day before start is outside")
}

func TestStartOfDay(t *testing.T) {
	noon := time.Date(2024, time.May, 3, 12, 30, 45, 99, time.UTC)
	assert.Equal(t, date("2024-05-03"), StartOfDay(noon))
}
