package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/satangdev/satang/internal/common"
	"github.com/satangdev/satang/internal/model"
)

// ExpenseFilter narrows the expense list. Zero values mean "no constraint".
type ExpenseFilter struct {
	Query      string
	CategoryID string
	From       model.Date
	To         model.Date
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// AddExpense validates and records a new expense.
func (l *Ledger) AddExpense(ctx context.Context, date model.Date, categoryID string, amount decimal.Decimal, note string) (*model.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	exp := model.Expense{
		ID:         uuid.NewString(),
		Date:       date,
		CategoryID: categoryID,
		Amount:     amount,
		Note:       strings.TrimSpace(note),
	}
	if err := exp.Validate(); err != nil {
		return nil, err
	}

	next := append([]model.Expense{exp}, l.expenses...)
	if err := l.store.SaveExpenses(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save expenses: %w", err)
	}
	l.expenses = next
	return &exp, nil
}

// DeleteExpense removes an expense. Deletion is the only mutation expenses
// support.
func (l *Ledger) DeleteExpense(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]model.Expense, 0, len(l.expenses))
	found := false
	for _, exp := range l.expenses {
		if exp.ID == id {
			found = true
			continue
		}
		next = append(next, exp)
	}
	if !found {
		return fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}

	if err := l.store.SaveExpenses(ctx, next); err != nil {
		return fmt.Errorf("failed to save expenses: %w", err)
	}
	l.expenses = next
	return nil
}

// Expenses returns the expenses matching the filter, ordered by date
// descending with insertion order breaking ties (most recent first).
func (l *Ledger) Expenses(filter ExpenseFilter) []model.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]model.Expense, 0, len(l.expenses))
	for _, exp := range l.expenses {
		if !filter.From.IsZero() && exp.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && exp.Date.After(filter.To) {
			continue
		}
		if filter.CategoryID != "" && exp.CategoryID != filter.CategoryID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(exp.Note), query) {
			continue
		}
		if filter.MinAmount != nil && exp.Amount.LessThan(*filter.MinAmount) {
			continue
		}
		if filter.MaxAmount != nil && exp.Amount.GreaterThan(*filter.MaxAmount) {
			continue
		}
		out = append(out, exp)
	}

	// The in-memory slice keeps newest-insertion-first order, so a stable
	// sort on date alone preserves the tie-break.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
