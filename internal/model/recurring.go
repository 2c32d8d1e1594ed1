package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RecurringTemplate is a rule that generates Expense instances on a monthly
// cadence. LastApplied is the engine's cursor: nil until the first
// application, afterwards always a date produced by the template's own
// due-date sequence, monotonically non-decreasing. Templates are never
// edited after creation, only deleted; editing Start or EveryMonths after
// LastApplied is set would make the derived occurrence count ambiguous.
type RecurringTemplate struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"categoryId"`
	Note        string          `json:"note,omitempty"`
	Start       Date            `json:"startISO"`
	EveryMonths int             `json:"everyMonths"`
	Occurrences *int            `json:"occurrences"`
	Until       *Date           `json:"untilISO"`
	LastApplied *Date           `json:"lastAppliedISO"`
	Amount      decimal.Decimal `json:"amount"`
}

// Validate checks the template against the boundary rules. The recurrence
// engine assumes validated input and performs no runtime validation.
func (r *RecurringTemplate) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("template id cannot be empty")
	}
	if r.CategoryID == "" {
		return fmt.Errorf("template category cannot be empty")
	}
	if r.Start.IsZero() {
		return fmt.Errorf("template start date cannot be empty")
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("template amount must be positive, got %s", r.Amount)
	}
	if r.EveryMonths < 1 {
		return fmt.Errorf("template interval must be at least 1 month, got %d", r.EveryMonths)
	}
	if r.Occurrences != nil && *r.Occurrences < 1 {
		return fmt.Errorf("template occurrence limit must be at least 1, got %d", *r.Occurrences)
	}
	if r.Until != nil && r.Until.Before(r.Start) {
		return fmt.Errorf("template end date %s is before start date %s", r.Until, r.Start)
	}
	return nil
}
