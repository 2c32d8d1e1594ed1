// Package ledger owns the in-memory application state and every controlled
// mutation entry point. The engines underneath it (cycle, budget,
// recurrence) are pure; the ledger hands them snapshots, applies the deltas
// they return, and persists through the storage gateway. A mutex serializes
// the entry points so the engines are never run on stale copies of the same
// state.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/satangdev/satang/internal/model"
	"github.com/satangdev/satang/internal/service"
)

// Ledger is the state container for settings, categories, expenses and
// recurring templates.
type Ledger struct {
	store      service.Storage
	settings   model.Settings
	categories []model.Category
	expenses   []model.Expense
	recurrings []model.RecurringTemplate
	mu         sync.Mutex
}

// Open loads every collection from storage into memory. When no settings
// were ever saved, the defaults are installed and persisted, matching
// first-run behavior.
func Open(ctx context.Context, store service.Storage) (*Ledger, error) {
	settings, err := store.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		defaults := model.DefaultSettings()
		if err := store.SaveSettings(ctx, defaults); err != nil {
			return nil, fmt.Errorf("failed to save default settings: %w", err)
		}
		settings = &defaults
	}

	categories, err := store.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	expenses, err := store.LoadExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	recurrings, err := store.LoadRecurrings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring templates: %w", err)
	}

	return &Ledger{
		store:      store,
		settings:   *settings,
		categories: categories,
		expenses:   expenses,
		recurrings: recurrings,
	}, nil
}

// Settings returns a copy of the current settings.
func (l *Ledger) Settings() model.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

// UpdateSettings validates, stores and persists new settings. The cycle
// start day is clamped into [1,31] here so the cycle calculator never sees
// an invalid day.
func (l *Ledger) UpdateSettings(ctx context.Context, settings model.Settings) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	settings.CycleStartDay = model.ClampCycleStartDay(settings.CycleStartDay)
	if settings.Currency == "" {
		settings.Currency = l.settings.Currency
	}
	if settings.Locale == "" {
		settings.Locale = l.settings.Locale
	}

	if err := l.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	l.settings = settings
	return nil
}
