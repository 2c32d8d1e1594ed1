package recurrence

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satangdev/satang/internal/model"
)

func day(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func monthly(t *testing.T, start string) model.RecurringTemplate {
	t.Helper()
	return model.RecurringTemplate{
		ID:          "tmpl-1",
		CategoryID:  "cat-1",
		Note:        "rent",
		Start:       day(t, start),
		EveryMonths: 1,
		Amount:      decimal.NewFromInt(500),
	}
}

func TestNextDue(t *testing.T) {
	tmpl := monthly(t, "2024-01-15")
	assert.True(t, NextDue(tmpl).Equal(day(t, "2024-01-15")), "never-applied template is due at its start")

	cursor := day(t, "2024-02-15")
	tmpl.LastApplied = &cursor
	assert.True(t, NextDue(tmpl).Equal(day(t, "2024-03-15")))

	tmpl.EveryMonths = 3
	assert.True(t, NextDue(tmpl).Equal(day(t, "2024-05-15")))
}

func TestNextDueClampsShortMonths(t *testing.T) {
	tmpl := monthly(t, "2024-01-31")
	cursor := day(t, "2024-01-31")
	tmpl.LastApplied = &cursor

	assert.True(t, NextDue(tmpl).Equal(day(t, "2024-02-29")), "Jan 31 + 1 month lands on Feb 29")
}

func TestDue(t *testing.T) {
	tmpl := monthly(t, "2024-01-15")

	assert.False(t, Due(tmpl, day(t, "2024-01-14")))
	assert.True(t, Due(tmpl, day(t, "2024-01-15")), "due on the start date itself")
	assert.True(t, Due(tmpl, day(t, "2024-02-01")))
}

func TestApplyOneGeneratesTaggedExpense(t *testing.T) {
	tmpl := monthly(t, "2024-01-15")

	expense, next, ok := ApplyOne(tmpl, day(t, "2024-01-20"))
	require.True(t, ok)

	assert.NotEmpty(t, expense.ID)
	assert.True(t, expense.Date.Equal(day(t, "2024-01-15")), "instance is dated at the due date, not today")
	assert.Equal(t, "cat-1", expense.CategoryID)
	assert.Equal(t, NoteTag+" rent", expense.Note)
	assert.True(t, expense.Amount.Equal(decimal.NewFromInt(500)))

	require.NotNil(t, next.LastApplied)
	assert.True(t, next.LastApplied.Equal(day(t, "2024-01-15")))
	assert.Nil(t, tmpl.LastApplied, "input template is not mutated")
}

func TestApplyOneEmptyNote(t *testing.T) {
	tmpl := monthly(t, "2024-01-15")
	tmpl.Note = ""

	expense, _, ok := ApplyOne(tmpl, day(t, "2024-01-15"))
	require.True(t, ok)
	assert.Equal(t, NoteTag, expense.Note, "no trailing space when the template has no note")
}

func TestApplyOneNotYetDue(t *testing.T) {
	tmpl := monthly(t, "2024-06-01")

	_, next, ok := ApplyOne(tmpl, day(t, "2024-05-31"))
	assert.False(t, ok)
	assert.Nil(t, next.LastApplied)
}

func TestCatchUpGeneratesEveryMissedInstance(t *testing.T) {
	tmpl := monthly(t, "2024-01-15")

	expenses, updated, applied := ApplyAllDue([]model.RecurringTemplate{tmpl}, day(t, "2024-04-10"), 0)

	require.Len(t, expenses, 3)
	assert.Equal(t, 3, applied)
	assert.True(t, expenses[0].Date.Equal(day(t, "2024-01-15")))
	assert.True(t, expenses[1].Date.Equal(day(t, "2024-02-15")))
	assert.True(t, expenses[2].Date.Equal(day(t, "2024-03-15")))

	require.Len(t, updated, 1)
	require.NotNil(t, updated[0].LastApplied)
	assert.True(t, updated[0].LastApplied.Equal(day(t, "2024-03-15")))
}

func TestCatchUpIsIdempotent(t *testing.T) {
	tmpl := monthly(t, "2024-01-15")
	today := day(t, "2024-04-10")

	_, updated, applied := ApplyAllDue([]model.RecurringTemplate{tmpl}, today, 0)
	require.Equal(t, 3, applied)

	// A second pass over the committed templates finds nothing due.
	expenses, again, applied := ApplyAllDue(updated, today, 0)
	assert.Empty(t, expenses)
	assert.Equal(t, 0, applied)
	assert.True(t, again[0].LastApplied.Equal(day(t, "2024-03-15")))
}

func TestOccurrenceLimit(t *testing.T) {
	tmpl := monthly(t, "2024-01-15")
	two := 2
	tmpl.Occurrences = &two

	expenses, updated, _ := ApplyAllDue([]model.RecurringTemplate{tmpl}, day(t, "2024-06-01"), 0)

	require.Len(t, expenses, 2, "occurrences=2 stops after the 2nd instance")
	assert.True(t, expenses[0].Date.Equal(day(t, "2024-01-15")))
	assert.True(t, expenses[1].Date.Equal(day(t, "2024-02-15")))
	assert.Equal(t, StateExhausted, StateOf(updated[0], day(t, "2024-06-01")))

	// Further passes never revive it.
	more, _, applied := ApplyAllDue(updated, day(t, "2025-01-01"), 0)
	assert.Empty(t, more)
	assert.Equal(t, 0, applied)
}

func TestUntilLimit(t *testing.T) {
	tmpl := monthly(t, "2024-01-15")
	until := day(t, "2024-03-01")
	tmpl.Until = &until

	expenses, updated, _ := ApplyAllDue([]model.RecurringTemplate{tmpl}, day(t, "2024-06-01"), 0)

	// Jan 15 and Feb 15 fall on or before the end date; Mar 15 does not.
	require.Len(t, expenses, 2)
	assert.Equal(t, StateExhausted, StateOf(updated[0], day(t, "2024-06-01")))
}

func TestUntilOnDueDateStillApplies(t *testing.T) {
	tmpl := monthly(t, "2024-01-15")
	until := day(t, "2024-02-15")
	tmpl.Until = &until

	expenses, _, _ := ApplyAllDue([]model.RecurringTemplate{tmpl}, day(t, "2024-06-01"), 0)
	require.Len(t, expenses, 2, "the end date is inclusive")
}

func TestCatchUpLimitBoundsOnePass(t *testing.T) {
	tmpl := monthly(t, "2020-01-15")

	expenses, updated, _ := ApplyAllDue([]model.RecurringTemplate{tmpl}, day(t, "2026-01-01"), 0)

	assert.Len(t, expenses, DefaultCatchUpLimit, "one pass emits at most the ceiling")
	require.NotNil(t, updated[0].LastApplied)

	// The cursor keeps its place, so the next pass resumes where this
	// one stopped instead of starting over.
	more, _, _ := ApplyAllDue(updated, day(t, "2026-01-01"), 0)
	assert.NotEmpty(t, more)
	assert.True(t, more[0].Date.Equal(day(t, "2023-01-15")))
}

func TestApplyAllDuePreservesOrderAndUntouched(t *testing.T) {
	due := monthly(t, "2024-01-15")
	future := monthly(t, "2030-01-01")
	future.ID = "tmpl-2"

	expenses, updated, applied := ApplyAllDue([]model.RecurringTemplate{future, due}, day(t, "2024-01-20"), 0)

	require.Len(t, updated, 2)
	assert.Equal(t, "tmpl-2", updated[0].ID)
	assert.Nil(t, updated[0].LastApplied)
	assert.NotNil(t, updated[1].LastApplied)
	assert.Equal(t, 1, applied)
	require.Len(t, expenses, 1)
}

func TestEveryMonthsInterval(t *testing.T) {
	tmpl := monthly(t, "2024-01-10")
	tmpl.EveryMonths = 3

	expenses, _, _ := ApplyAllDue([]model.RecurringTemplate{tmpl}, day(t, "2024-12-31"), 0)

	require.Len(t, expenses, 4)
	assert.True(t, expenses[1].Date.Equal(day(t, "2024-04-10")))
	assert.True(t, expenses[3].Date.Equal(day(t, "2024-10-10")))
}

func TestStateOf(t *testing.T) {
	today := day(t, "2024-03-01")

	pending := monthly(t, "2024-06-01")
	assert.Equal(t, StatePending, StateOf(pending, today))

	active := monthly(t, "2024-01-15")
	cursor := day(t, "2024-02-15")
	active.LastApplied = &cursor
	assert.Equal(t, StateActive, StateOf(active, today))

	exhausted := active
	two := 2
	exhausted.Occurrences = &two
	assert.Equal(t, StateExhausted, StateOf(exhausted, today))
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	tmpl := monthly(t, "2024-01-15")

	expenses, _, _ := ApplyAllDue([]model.RecurringTemplate{tmpl}, day(t, "2024-06-01"), 0)
	require.Greater(t, len(expenses), 1)

	seen := map[string]bool{}
	for _, e := range expenses {
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
		assert.True(t, strings.HasPrefix(e.Note, NoteTag))
	}
}
