// Package recurrence decides when recurring-charge templates are due and
// generates their expense instances.
//
// The engine is pure: it receives template snapshots and "today", and
// returns the generated expenses plus the advanced templates. Committing
// both together is the caller's job. There is no stored occurrence counter;
// the count is derived each time from the template's start date, interval
// and cursor, so a repeat run after a commit finds nothing due and the
// whole pass is idempotent.
package recurrence

import (
	"github.com/google/uuid"

	"github.com/satangdev/satang/internal/cycle"
	"github.com/satangdev/satang/internal/model"
)

// NoteTag marks expenses generated from a recurring template.
const NoteTag = "[recurring]"

// DefaultCatchUpLimit bounds how many instances a single template may
// generate in one catch-up pass. It guarantees termination under
// pathological configuration and is a safety ceiling, not a domain rule:
// 36 covers three years of monthly occurrences. Callers with different
// tolerances pass their own limit to ApplyAllDue.
const DefaultCatchUpLimit = 36

// NextDue returns the next date on which the template is eligible to
// generate an instance: the start date itself while the template has never
// been applied, otherwise the cursor advanced by the interval.
func NextDue(tmpl model.RecurringTemplate) model.Date {
	if tmpl.LastApplied == nil {
		return tmpl.Start
	}
	return model.DateOf(cycle.AddMonthsClamped(tmpl.LastApplied.Time(), tmpl.EveryMonths))
}

// Due reports whether the template's next instance date has been reached.
func Due(tmpl model.RecurringTemplate, today model.Date) bool {
	return !NextDue(tmpl).After(today)
}

// occurrenceIndex is the zero-based count of EveryMonths-sized steps
// between the template's start and candidate, derived from whole-month
// calendar distance. This is the single implementation of the derivation;
// the occurrence limit is gated on it, and an off-by-one here silently
// skips or duplicates an instance.
func occurrenceIndex(tmpl model.RecurringTemplate, candidate model.Date) int {
	start := tmpl.Start.Time()
	cand := candidate.Time()

	months := (cand.Year()-start.Year())*12 + int(cand.Month()) - int(start.Month())
	index := months / tmpl.EveryMonths
	if index < 0 {
		return 0
	}
	return index
}

// consumedCount derives how many occurrences the template has already
// emitted. A cursor at start+k*EveryMonths means occurrences #0..#k have
// been applied, which is occurrenceIndex(cursor)+1 instances; no cursor
// means none.
func consumedCount(tmpl model.RecurringTemplate) int {
	if tmpl.LastApplied == nil {
		return 0
	}
	return occurrenceIndex(tmpl, *tmpl.LastApplied) + 1
}

// withinLimits reports whether the template may emit one more instance
// dated candidate, given how many occurrences it has already consumed.
func withinLimits(tmpl model.RecurringTemplate, appliedSoFar int, candidate model.Date) bool {
	if tmpl.Occurrences != nil && appliedSoFar >= *tmpl.Occurrences {
		return false
	}
	if tmpl.Until != nil && candidate.After(*tmpl.Until) {
		return false
	}
	return true
}

// ApplyOne attempts a single application of the template. When the next due
// date has been reached and the template's limits permit it, ApplyOne
// returns the generated expense, a copy of the template with its cursor
// advanced to the instance date, and true. Otherwise it returns the
// template unchanged and false; a template past its limits is not an error,
// just permanently inert.
func ApplyOne(tmpl model.RecurringTemplate, today model.Date) (model.Expense, model.RecurringTemplate, bool) {
	candidate := NextDue(tmpl)
	if candidate.After(today) {
		return model.Expense{}, tmpl, false
	}

	if !withinLimits(tmpl, consumedCount(tmpl), candidate) {
		return model.Expense{}, tmpl, false
	}

	note := NoteTag
	if tmpl.Note != "" {
		note = NoteTag + " " + tmpl.Note
	}
	expense := model.Expense{
		ID:         uuid.NewString(),
		Date:       candidate,
		CategoryID: tmpl.CategoryID,
		Amount:     tmpl.Amount,
		Note:       note,
	}

	applied := candidate
	tmpl.LastApplied = &applied
	return expense, tmpl, true
}

// ApplyAllDue runs the catch-up pass: each template is applied repeatedly,
// up to maxPerTemplate instances, until it is no longer due, so a template
// several cycles behind emits every missed instance in one call. It returns
// the generated expenses, the template set with advanced cursors (same
// order, including untouched templates), and the number of applications.
func ApplyAllDue(templates []model.RecurringTemplate, today model.Date, maxPerTemplate int) ([]model.Expense, []model.RecurringTemplate, int) {
	if maxPerTemplate <= 0 {
		maxPerTemplate = DefaultCatchUpLimit
	}

	var expenses []model.Expense
	updated := make([]model.RecurringTemplate, len(templates))
	applied := 0

	for i, tmpl := range templates {
		for range maxPerTemplate {
			expense, next, ok := ApplyOne(tmpl, today)
			if !ok {
				break
			}
			expenses = append(expenses, expense)
			tmpl = next
			applied++
		}
		updated[i] = tmpl
	}

	return expenses, updated, applied
}

// State is the derived lifecycle state of a template. It is never stored;
// limits are re-evaluated on every pass.
type State string

const (
	// StatePending means the template has not generated anything yet.
	StatePending State = "pending"
	// StateActive means the template has applied at least once and may
	// still emit further instances.
	StateActive State = "active"
	// StateExhausted means the occurrence or end-date limit is reached;
	// there is no transition out of this state.
	StateExhausted State = "exhausted"
)

// StateOf derives the template's lifecycle state as of today.
func StateOf(tmpl model.RecurringTemplate, today model.Date) State {
	candidate := NextDue(tmpl)
	if !withinLimits(tmpl, consumedCount(tmpl), candidate) {
		return StateExhausted
	}
	if tmpl.LastApplied == nil {
		return StatePending
	}
	return StateActive
}
