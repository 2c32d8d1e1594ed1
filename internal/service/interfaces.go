// Package service defines the interfaces between the application layers.
package service

import (
	"context"

	"github.com/satangdev/satang/internal/model"
)

// Storage is the persistence gateway contract. Each collection is loaded
// and saved wholesale; implementations must round-trip every field
// losslessly and must not alter record shape or identity. LoadSettings
// returns nil (not an error) when no settings have ever been saved.
//
// The application computes purely on whatever in-memory snapshot it was
// given; a failed load or save is surfaced to the caller and never blocks
// the computation already done.
type Storage interface {
	LoadSettings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, settings model.Settings) error

	LoadCategories(ctx context.Context) ([]model.Category, error)
	SaveCategories(ctx context.Context, categories []model.Category) error

	LoadExpenses(ctx context.Context) ([]model.Expense, error)
	SaveExpenses(ctx context.Context, expenses []model.Expense) error

	LoadRecurrings(ctx context.Context) ([]model.RecurringTemplate, error)
	SaveRecurrings(ctx context.Context, templates []model.RecurringTemplate) error

	// Migrate brings the schema up to the expected version.
	Migrate(ctx context.Context) error
	// BeginTx starts a transaction so multiple collections can be saved
	// atomically, e.g. new expenses together with advanced recurring
	// cursors.
	BeginTx(ctx context.Context) (Tx, error)
	Close() error
}

// Tx is a storage transaction. Saves inside the transaction become visible
// only on Commit; Rollback after Commit is a no-op so it can be deferred.
type Tx interface {
	SaveSettings(ctx context.Context, settings model.Settings) error
	SaveCategories(ctx context.Context, categories []model.Category) error
	SaveExpenses(ctx context.Context, expenses []model.Expense) error
	SaveRecurrings(ctx context.Context, templates []model.RecurringTemplate) error

	Commit() error
	Rollback() error
}
