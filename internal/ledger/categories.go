package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/satangdev/satang/internal/common"
	"github.com/satangdev/satang/internal/model"
)

// Categories returns a copy of the category set.
func (l *Ledger) Categories() []model.Category {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Category, len(l.categories))
	copy(out, l.categories)
	return out
}

// AddCategory creates a category after boundary validation: non-empty name,
// unique case-insensitively, non-negative budget.
func (l *Ledger) AddCategory(ctx context.Context, name string, budget decimal.Decimal, color string) (*model.Category, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cat := model.Category{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(name),
		Budget: budget,
		Color:  color,
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	for i := range l.categories {
		if l.categories[i].NameKey() == cat.NameKey() {
			return nil, fmt.Errorf("%w: %q", common.ErrDuplicateCategory, cat.Name)
		}
	}

	next := append([]model.Category{cat}, l.categories...)
	if err := l.store.SaveCategories(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save categories: %w", err)
	}
	l.categories = next
	return &cat, nil
}

// UpdateCategory changes a category's name, budget or color. Empty name or
// nil budget means "keep the current value".
func (l *Ledger) UpdateCategory(ctx context.Context, id, name string, budget *decimal.Decimal, color string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.categories {
		if l.categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}

	updated := l.categories[idx]
	if name != "" {
		updated.Name = strings.TrimSpace(name)
	}
	if budget != nil {
		updated.Budget = *budget
	}
	if color != "" {
		updated.Color = color
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	for i := range l.categories {
		if i != idx && l.categories[i].NameKey() == updated.NameKey() {
			return fmt.Errorf("%w: %q", common.ErrDuplicateCategory, updated.Name)
		}
	}

	next := make([]model.Category, len(l.categories))
	copy(next, l.categories)
	next[idx] = updated
	if err := l.store.SaveCategories(ctx, next); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	l.categories = next
	return nil
}

// DeleteCategory removes a category from the active set. Expenses and
// templates referencing it are left untouched; they become orphaned, which
// aggregation and recurrence handle without error.
func (l *Ledger) DeleteCategory(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]model.Category, 0, len(l.categories))
	found := false
	for _, cat := range l.categories {
		if cat.ID == id {
			found = true
			continue
		}
		next = append(next, cat)
	}
	if !found {
		return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}

	if err := l.store.SaveCategories(ctx, next); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	l.categories = next
	return nil
}

// CategoryName resolves a category id to its display name, with the
// orphaned-reference placeholder when the category is gone.
func (l *Ledger) CategoryName(id string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.categoryNameLocked(id)
}

func (l *Ledger) categoryNameLocked(id string) string {
	for i := range l.categories {
		if l.categories[i].ID == id {
			return l.categories[i].Name
		}
	}
	return "(no category found)"
}

// ResolveCategory maps a user-supplied reference to a category: exact id
// first, then case-insensitive name. When nothing matches, the error
// suggests the closest name by edit distance.
func (l *Ledger) ResolveCategory(ref string) (*model.Category, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.categories {
		if l.categories[i].ID == ref {
			cat := l.categories[i]
			return &cat, nil
		}
	}

	key := strings.ToLower(strings.TrimSpace(ref))
	for i := range l.categories {
		if l.categories[i].NameKey() == key {
			cat := l.categories[i]
			return &cat, nil
		}
	}

	if suggestion := l.closestCategoryLocked(key); suggestion != "" {
		return nil, common.NewUserError(
			fmt.Sprintf("no category %q (did you mean %q?)", ref, suggestion),
			common.ErrNotFound)
	}
	return nil, fmt.Errorf("category %q: %w", ref, common.ErrNotFound)
}

// closestCategoryLocked returns the category name nearest to key by edit
// distance, or "" when nothing is plausibly close.
func (l *Ledger) closestCategoryLocked(key string) string {
	best := ""
	bestDistance := 4 // further than this is not a useful suggestion
	for i := range l.categories {
		d := levenshtein.ComputeDistance(key, l.categories[i].NameKey())
		if d < bestDistance {
			bestDistance = d
			best = l.categories[i].Name
		}
	}
	return best
}
