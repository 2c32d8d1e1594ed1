package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Expense is a single logged spend. Expenses are immutable once created;
// the only mutation is deletion. CategoryID is a weak reference: the
// category may have been deleted since, which is not an error.
type Expense struct {
	ID         string          `json:"id"`
	Date       Date            `json:"dateISO"`
	CategoryID string          `json:"categoryId"`
	Note       string          `json:"note,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

// Validate checks the expense against the boundary rules.
func (e *Expense) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("expense id cannot be empty")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("expense date cannot be empty")
	}
	if e.CategoryID == "" {
		return fmt.Errorf("expense category cannot be empty")
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("expense amount must be positive, got %s", e.Amount)
	}
	return nil
}
