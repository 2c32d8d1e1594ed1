// Package budget aggregates expenses against category budgets within a
// cycle window.
package budget

import (
	"github.com/shopspring/decimal"

	"github.com/satangdev/satang/internal/cycle"
	"github.com/satangdev/satang/internal/model"
)

// Row is the budget-vs-spend figure for one category within a window.
type Row struct {
	CategoryID string
	Name       string
	Budget     decimal.Decimal
	Spent      decimal.Decimal
	Remain     decimal.Decimal
	Over       decimal.Decimal
}

// Summary is the aggregation result for one window. Unassigned collects
// spend from expenses whose category no longer exists; it has no row of its
// own but is included in TotalSpent so the grand total reconciles with the
// raw expense list.
type Summary struct {
	Rows        []Row
	Unassigned  decimal.Decimal
	TotalBudget decimal.Decimal
	TotalSpent  decimal.Decimal
	TotalRemain decimal.Decimal
}

// Aggregate filters expenses to the window and buckets them per category.
// It is pure: identical inputs always produce identical output, and rows
// come back in category order. Orphaned expenses never fail aggregation;
// they land in the Unassigned bucket.
func Aggregate(categories []model.Category, expenses []model.Expense, window cycle.Window) Summary {
	spent := make(map[string]decimal.Decimal, len(categories))
	known := make(map[string]bool, len(categories))
	for _, cat := range categories {
		spent[cat.ID] = decimal.Zero
		known[cat.ID] = true
	}

	unassigned := decimal.Zero
	for _, exp := range expenses {
		if !window.Contains(exp.Date.Time()) {
			continue
		}
		if !known[exp.CategoryID] {
			unassigned = unassigned.Add(exp.Amount)
			continue
		}
		spent[exp.CategoryID] = spent[exp.CategoryID].Add(exp.Amount)
	}

	summary := Summary{
		Rows:        make([]Row, 0, len(categories)),
		Unassigned:  unassigned,
		TotalBudget: decimal.Zero,
		TotalSpent:  unassigned,
	}
	for _, cat := range categories {
		row := Row{
			CategoryID: cat.ID,
			Name:       cat.Name,
			Budget:     cat.Budget,
			Spent:      spent[cat.ID],
			Remain:     cat.Budget.Sub(spent[cat.ID]),
		}
		if over := row.Spent.Sub(row.Budget); over.IsPositive() {
			row.Over = over
		} else {
			row.Over = decimal.Zero
		}
		summary.Rows = append(summary.Rows, row)
		summary.TotalBudget = summary.TotalBudget.Add(row.Budget)
		summary.TotalSpent = summary.TotalSpent.Add(row.Spent)
	}
	summary.TotalRemain = summary.TotalBudget.Sub(summary.TotalSpent)

	return summary
}

// DayRow is one day of the per-day-per-category breakdown. Amounts has an
// entry for every category, zero-filled, so chart-style consumers get a
// continuous series.
type DayRow struct {
	Date    model.Date
	Amounts map[string]decimal.Decimal
}

// DailySeries buckets the window's expenses by (day, category), covering
// every day of the window even when nothing was spent. Orphaned expenses
// are excluded here; they have no category to chart against.
func DailySeries(categories []model.Category, expenses []model.Expense, window cycle.Window) []DayRow {
	known := make(map[string]bool, len(categories))
	for _, cat := range categories {
		known[cat.ID] = true
	}

	var rows []DayRow
	index := make(map[string]int)
	for day := cycle.StartOfDay(window.Start); !day.After(window.End); day = day.AddDate(0, 0, 1) {
		amounts := make(map[string]decimal.Decimal, len(categories))
		for _, cat := range categories {
			amounts[cat.ID] = decimal.Zero
		}
		date := model.DateOf(day)
		index[date.String()] = len(rows)
		rows = append(rows, DayRow{Date: date, Amounts: amounts})
	}

	for _, exp := range expenses {
		if !window.Contains(exp.Date.Time()) || !known[exp.CategoryID] {
			continue
		}
		if i, ok := index[exp.Date.String()]; ok {
			rows[i].Amounts[exp.CategoryID] = rows[i].Amounts[exp.CategoryID].Add(exp.Amount)
		}
	}

	return rows
}
