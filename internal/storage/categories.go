package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/satangdev/satang/internal/model"
)

// LoadCategories returns all categories, most recently created first.
func (s *SQLiteStore) LoadCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, budget, COALESCE(color, '')
		FROM categories
		ORDER BY rowid DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Budget, &cat.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("loaded categories", "count", len(categories))
	return categories, nil
}

// SaveCategories replaces the stored category set wholesale.
func (s *SQLiteStore) SaveCategories(ctx context.Context, categories []model.Category) error {
	return s.saveWholesale(ctx, func(tx *sqliteTx) error {
		return tx.SaveCategories(ctx, categories)
	})
}

// SaveCategories replaces the category set within the transaction.
func (t *sqliteTx) SaveCategories(ctx context.Context, categories []model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategories(categories); err != nil {
		return err
	}

	if _, err := t.tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	// Insert oldest-first so rowid order matches the in-memory
	// most-recent-first ordering on reload.
	for i := len(categories) - 1; i >= 0; i-- {
		cat := categories[i]
		_, err := t.tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, budget, color) VALUES (?, ?, ?, ?)`,
			cat.ID, cat.Name, cat.Budget, cat.Color)
		if err != nil {
			return fmt.Errorf("failed to insert category %q: %w", cat.Name, err)
		}
	}

	return nil
}
