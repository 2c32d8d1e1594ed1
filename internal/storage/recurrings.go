package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/satangdev/satang/internal/model"
)

// LoadRecurrings returns all recurring templates, most recently created
// first.
func (s *SQLiteStore) LoadRecurrings(ctx context.Context) ([]model.RecurringTemplate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, category_id, amount, COALESCE(note, ''),
		       start_date, every_months, occurrences, until_date, last_applied
		FROM recurrings
		ORDER BY rowid DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring templates: %w", err)
	}
	defer rows.Close()

	var templates []model.RecurringTemplate
	for rows.Next() {
		var tmpl model.RecurringTemplate
		var occurrences sql.NullInt64
		var until, lastApplied sql.NullString

		err := rows.Scan(&tmpl.ID, &tmpl.CategoryID, &tmpl.Amount, &tmpl.Note,
			&tmpl.Start, &tmpl.EveryMonths, &occurrences, &until, &lastApplied)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring template: %w", err)
		}

		if occurrences.Valid {
			n := int(occurrences.Int64)
			tmpl.Occurrences = &n
		}
		if until.Valid && until.String != "" {
			date, err := model.ParseDate(until.String)
			if err != nil {
				return nil, fmt.Errorf("template %s: bad until date: %w", tmpl.ID, err)
			}
			tmpl.Until = &date
		}
		if lastApplied.Valid && lastApplied.String != "" {
			date, err := model.ParseDate(lastApplied.String)
			if err != nil {
				return nil, fmt.Errorf("template %s: bad cursor date: %w", tmpl.ID, err)
			}
			tmpl.LastApplied = &date
		}

		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring templates: %w", err)
	}

	slog.Debug("loaded recurring templates", "count", len(templates))
	return templates, nil
}

// SaveRecurrings replaces the stored template set wholesale.
func (s *SQLiteStore) SaveRecurrings(ctx context.Context, templates []model.RecurringTemplate) error {
	return s.saveWholesale(ctx, func(tx *sqliteTx) error {
		return tx.SaveRecurrings(ctx, templates)
	})
}

// SaveRecurrings replaces the template set within the transaction.
func (t *sqliteTx) SaveRecurrings(ctx context.Context, templates []model.RecurringTemplate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecurrings(templates); err != nil {
		return err
	}

	if _, err := t.tx.ExecContext(ctx, `DELETE FROM recurrings`); err != nil {
		return fmt.Errorf("failed to clear recurring templates: %w", err)
	}

	for i := len(templates) - 1; i >= 0; i-- {
		tmpl := templates[i]

		var occurrences any
		if tmpl.Occurrences != nil {
			occurrences = *tmpl.Occurrences
		}
		var until, lastApplied any
		if tmpl.Until != nil {
			until = tmpl.Until.String()
		}
		if tmpl.LastApplied != nil {
			lastApplied = tmpl.LastApplied.String()
		}

		_, err := t.tx.ExecContext(ctx,
			`INSERT INTO recurrings
				(id, category_id, amount, note, start_date, every_months, occurrences, until_date, last_applied)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tmpl.ID, tmpl.CategoryID, tmpl.Amount, tmpl.Note,
			tmpl.Start, tmpl.EveryMonths, occurrences, until, lastApplied)
		if err != nil {
			return fmt.Errorf("failed to insert recurring template %s: %w", tmpl.ID, err)
		}
	}

	return nil
}
