package ledger

import (
	"time"

	"github.com/satangdev/satang/internal/budget"
	"github.com/satangdev/satang/internal/cycle"
	"github.com/satangdev/satang/internal/model"
)

// Summary aggregates the cycle window offset cycles before the one
// containing today. offset is clamped to >= 0 here; paging never goes into
// the future.
func (l *Ledger) Summary(today time.Time, offset int) (budget.Summary, cycle.Window) {
	if offset < 0 {
		offset = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	window := cycle.Range(today, l.settings.CycleStartDay, offset)
	return budget.Aggregate(l.categories, l.expenses, window), window
}

// SummaryRange aggregates an arbitrary inclusive date range, for reports
// that don't follow the billing cycle.
func (l *Ledger) SummaryRange(from, to model.Date) (budget.Summary, cycle.Window) {
	l.mu.Lock()
	defer l.mu.Unlock()

	window := cycle.Window{
		Start: from.Time(),
		End:   to.Time().AddDate(0, 0, 1).Add(-time.Nanosecond),
	}
	return budget.Aggregate(l.categories, l.expenses, window), window
}

// DailyBreakdown returns the zero-filled per-day-per-category series for a
// cycle window.
func (l *Ledger) DailyBreakdown(today time.Time, offset int) []budget.DayRow {
	if offset < 0 {
		offset = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	window := cycle.Range(today, l.settings.CycleStartDay, offset)
	return budget.DailySeries(l.categories, l.expenses, window)
}
