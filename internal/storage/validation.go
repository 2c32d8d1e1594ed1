package storage

import (
	"context"
	"fmt"

	"github.com/satangdev/satang/internal/model"
)

// validateContext ensures a context is usable before touching the database.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}
	return nil
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}

func validateCategories(categories []model.Category) error {
	for i := range categories {
		if err := categories[i].Validate(); err != nil {
			return fmt.Errorf("category %d: %w", i, err)
		}
	}
	return nil
}

func validateExpenses(expenses []model.Expense) error {
	for i := range expenses {
		if err := expenses[i].Validate(); err != nil {
			return fmt.Errorf("expense %d: %w", i, err)
		}
	}
	return nil
}

func validateRecurrings(templates []model.RecurringTemplate) error {
	for i := range templates {
		if err := templates[i].Validate(); err != nil {
			return fmt.Errorf("recurring template %d: %w", i, err)
		}
	}
	return nil
}
