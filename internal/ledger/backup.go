package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/satangdev/satang/internal/common"
	"github.com/satangdev/satang/internal/model"
)

// BackupDocument is the backup file layout: exactly the four collections,
// mirroring the data model field for field.
type BackupDocument struct {
	Settings   model.Settings            `json:"settings"`
	Categories []model.Category          `json:"categories"`
	Expenses   []model.Expense           `json:"expenses"`
	Recurrings []model.RecurringTemplate `json:"recurrings"`
}

// Backup writes the full state as an indented JSON document.
func (l *Ledger) Backup(w io.Writer) error {
	l.mu.Lock()
	doc := BackupDocument{
		Settings:   l.settings,
		Categories: l.categories,
		Expenses:   l.expenses,
		Recurrings: l.recurrings,
	}
	l.mu.Unlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Restore replaces every collection wholesale with the document's contents
// and persists them in a single transaction. There is no merging; a restore
// is a full replacement.
func (l *Ledger) Restore(ctx context.Context, r io.Reader) error {
	var doc BackupDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidBackup, err)
	}

	doc.Settings.CycleStartDay = model.ClampCycleStartDay(doc.Settings.CycleStartDay)

	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.SaveSettings(ctx, doc.Settings); err != nil {
		return fmt.Errorf("failed to restore settings: %w", err)
	}
	if err := tx.SaveCategories(ctx, doc.Categories); err != nil {
		return fmt.Errorf("failed to restore categories: %w", err)
	}
	if err := tx.SaveExpenses(ctx, doc.Expenses); err != nil {
		return fmt.Errorf("failed to restore expenses: %w", err)
	}
	if err := tx.SaveRecurrings(ctx, doc.Recurrings); err != nil {
		return fmt.Errorf("failed to restore recurring templates: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}

	l.settings = doc.Settings
	l.categories = doc.Categories
	l.expenses = doc.Expenses
	l.recurrings = doc.Recurrings
	return nil
}
