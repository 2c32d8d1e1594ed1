// Package model defines the domain types shared across the application.
package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category represents a spending category with a per-cycle budget.
type Category struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Color  string          `json:"color,omitempty"`
	Budget decimal.Decimal `json:"budget"`
}

// Validate checks the category against the boundary rules: name must be
// non-empty and the budget must not be negative.
func (c *Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("category id cannot be empty")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name cannot be empty")
	}
	if c.Budget.IsNegative() {
		return fmt.Errorf("category %q: budget cannot be negative", c.Name)
	}
	return nil
}

// NameKey returns the case-insensitive key used for uniqueness checks.
func (c *Category) NameKey() string {
	return strings.ToLower(strings.TrimSpace(c.Name))
}
