// Package testutil provides test helpers for packages that need a real
// storage backend.
package testutil

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/satangdev/satang/internal/model"
	"github.com/satangdev/satang/internal/service"
	"github.com/satangdev/satang/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite store, optionally seeded
// with categories, and registers cleanup.
func SetupTestDB(t *testing.T, categories ...model.Category) service.Storage {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(categories) > 0 {
		if err := store.SaveCategories(ctx, categories); err != nil {
			t.Fatalf("failed to seed categories: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// Category builds a valid category for tests.
func Category(id, name string, budget int64) model.Category {
	return model.Category{
		ID:     id,
		Name:   name,
		Budget: decimal.NewFromInt(budget),
	}
}

// Expense builds a valid expense for tests.
func Expense(id, dateISO, categoryID string, amount int64) model.Expense {
	date, err := model.ParseDate(dateISO)
	if err != nil {
		panic(err)
	}
	return model.Expense{
		ID:         id,
		Date:       date,
		CategoryID: categoryID,
		Amount:     decimal.NewFromInt(amount),
	}
}

// MustDate parses a date literal or panics; for test fixtures only.
func MustDate(dateISO string) model.Date {
	date, err := model.ParseDate(dateISO)
	if err != nil {
		panic(err)
	}
	return date
}
