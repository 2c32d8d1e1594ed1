// Package cycle computes billing-cycle windows anchored to a configurable
// start day, and the month arithmetic the rest of the application shares.
package cycle

import "time"

// AddMonthsClamped adds n whole months to t, preserving the day of month.
// If the target month is shorter than the original day of month, the result
// clamps to the last day of that month: Jan 31 + 1 month is Feb 28 (or 29),
// never Mar 2. Every month addition in the application goes through this
// function so that cycle shifting and recurrence due dates agree.
func AddMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	first := time.Date(year, month, 1, hour, minute, sec, t.Nanosecond(), t.Location())
	shifted := first.AddDate(0, n, 0)

	if last := daysIn(shifted.Year(), shifted.Month()); day > last {
		day = last
	}
	return time.Date(shifted.Year(), shifted.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Window is a billing cycle with inclusive boundaries. Start is midnight on
// the cycle's first day; End is one nanosecond before the next cycle's
// Start, so consecutive windows tile the calendar without gaps or overlap.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Range derives the cycle window containing (or preceding) today.
//
// The current cycle starts on this month's startDay if today has reached it,
// otherwise on last month's startDay, with short months clamped the same way
// as AddMonthsClamped. offset shifts the window back by whole cycles: 0 is
// the current cycle, 1 the previous one. Any integer offset is accepted;
// clamping to >= 0 for paging is the caller's concern, as is keeping
// startDay inside [1,31].
//
// Only today's calendar date matters, never its zone: windows are anchored
// at midnight UTC, the same normalization stored dates carry, so boundary
// containment is a pure day comparison.
func Range(today time.Time, startDay, offset int) Window {
	year, month, _ := today.Date()
	if today.Day() < startDay {
		// The cycle began last month. time.Date normalizes month 0 to
		// December of the previous year, and so does daysIn.
		month--
	}

	day := startDay
	if last := daysIn(year, month); day > last {
		day = last
	}
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	start = StartOfDay(AddMonthsClamped(start, -offset))
	end := AddMonthsClamped(start, 1).Add(-time.Nanosecond)

	return Window{Start: start, End: end}
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
