package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/satangdev/satang/internal/common"
	"github.com/satangdev/satang/internal/model"
	"github.com/satangdev/satang/internal/recurrence"
)

// RecurringRow is a template plus its derived display fields.
type RecurringRow struct {
	Template model.RecurringTemplate
	NextDue  model.Date
	State    recurrence.State
	Due      bool
}

// NewRecurringInput carries the user-supplied fields for a new template.
type NewRecurringInput struct {
	CategoryID  string
	Note        string
	Start       model.Date
	EveryMonths int
	Occurrences *int
	Until       *model.Date
	Amount      decimal.Decimal
}

// AddRecurring validates and records a new recurring template. Templates
// are never edited afterwards, only deleted, so the recurrence engine's
// derived occurrence count stays unambiguous.
func (l *Ledger) AddRecurring(ctx context.Context, input NewRecurringInput) (*model.RecurringTemplate, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tmpl := model.RecurringTemplate{
		ID:          uuid.NewString(),
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Note:        input.Note,
		Start:       input.Start,
		EveryMonths: input.EveryMonths,
		Occurrences: input.Occurrences,
		Until:       input.Until,
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	next := append([]model.RecurringTemplate{tmpl}, l.recurrings...)
	if err := l.store.SaveRecurrings(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save recurring templates: %w", err)
	}
	l.recurrings = next
	return &tmpl, nil
}

// DeleteRecurring removes a template. Expenses it generated remain.
func (l *Ledger) DeleteRecurring(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]model.RecurringTemplate, 0, len(l.recurrings))
	found := false
	for _, tmpl := range l.recurrings {
		if tmpl.ID == id {
			found = true
			continue
		}
		next = append(next, tmpl)
	}
	if !found {
		return fmt.Errorf("recurring template %s: %w", id, common.ErrNotFound)
	}

	if err := l.store.SaveRecurrings(ctx, next); err != nil {
		return fmt.Errorf("failed to save recurring templates: %w", err)
	}
	l.recurrings = next
	return nil
}

// Recurrings returns every template with its derived next-due date and
// state as of today.
func (l *Ledger) Recurrings(today model.Date) []RecurringRow {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows := make([]RecurringRow, 0, len(l.recurrings))
	for _, tmpl := range l.recurrings {
		rows = append(rows, RecurringRow{
			Template: tmpl,
			NextDue:  recurrence.NextDue(tmpl),
			State:    recurrence.StateOf(tmpl, today),
			Due:      recurrence.Due(tmpl, today),
		})
	}
	return rows
}

// ApplyDueRecurrings runs the recurrence catch-up pass over every template
// and commits the generated expenses together with the advanced cursors in
// one storage transaction. There is never a committed state with a new
// expense but an unmoved cursor or vice versa, so re-running immediately is
// a no-op: the due check finds nothing left.
func (l *Ledger) ApplyDueRecurrings(ctx context.Context, today model.Date) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	generated, updated, applied := recurrence.ApplyAllDue(l.recurrings, today, recurrence.DefaultCatchUpLimit)
	if applied == 0 {
		return 0, nil
	}

	// Generated instances go in front, newest template application first,
	// to match the most-recent-first expense ordering.
	nextExpenses := make([]model.Expense, 0, len(generated)+len(l.expenses))
	for i := len(generated) - 1; i >= 0; i-- {
		nextExpenses = append(nextExpenses, generated[i])
	}
	nextExpenses = append(nextExpenses, l.expenses...)

	tx, err := l.store.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.SaveExpenses(ctx, nextExpenses); err != nil {
		return 0, fmt.Errorf("failed to save generated expenses: %w", err)
	}
	if err := tx.SaveRecurrings(ctx, updated); err != nil {
		return 0, fmt.Errorf("failed to save advanced templates: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit recurrence application: %w", err)
	}

	l.expenses = nextExpenses
	l.recurrings = updated

	slog.Info("applied due recurring templates", "generated", applied)
	return applied, nil
}
