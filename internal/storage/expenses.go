package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/satangdev/satang/internal/model"
)

// LoadExpenses returns all expenses ordered by date descending, insertion
// order breaking ties (most recent first).
func (s *SQLiteStore) LoadExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, category_id, amount, COALESCE(note, '')
		FROM expenses
		ORDER BY date DESC, rowid DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var exp model.Expense
		if err := rows.Scan(&exp.ID, &exp.Date, &exp.CategoryID, &exp.Amount, &exp.Note); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("loaded expenses", "count", len(expenses))
	return expenses, nil
}

// SaveExpenses replaces the stored expense set wholesale.
func (s *SQLiteStore) SaveExpenses(ctx context.Context, expenses []model.Expense) error {
	return s.saveWholesale(ctx, func(tx *sqliteTx) error {
		return tx.SaveExpenses(ctx, expenses)
	})
}

// SaveExpenses replaces the expense set within the transaction.
func (t *sqliteTx) SaveExpenses(ctx context.Context, expenses []model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpenses(expenses); err != nil {
		return err
	}

	if _, err := t.tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	for i := len(expenses) - 1; i >= 0; i-- {
		exp := expenses[i]
		_, err := t.tx.ExecContext(ctx,
			`INSERT INTO expenses (id, date, category_id, amount, note) VALUES (?, ?, ?, ?, ?)`,
			exp.ID, exp.Date, exp.CategoryID, exp.Amount, exp.Note)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", exp.ID, err)
		}
	}

	return nil
}
