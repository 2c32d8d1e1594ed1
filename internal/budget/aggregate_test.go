package budget

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satangdev/satang/internal/cycle"
	"github.com/satangdev/satang/internal/model"
)

func window(t *testing.T, from, to string) cycle.Window {
	t.Helper()
	start, err := time.Parse("2006-01-02", from)
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02", to)
	require.NoError(t, err)
	return cycle.Window{Start: start, End: end.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}

func category(id, name string, budget int64) model.Category {
	return model.Category{ID: id, Name: name, Budget: decimal.NewFromInt(budget)}
}

func expense(t *testing.T, id, date, categoryID string, amount int64) model.Expense {
	t.Helper()
	d, err := model.ParseDate(date)
	require.NoError(t, err)
	return model.Expense{ID: id, Date: d, CategoryID: categoryID, Amount: decimal.NewFromInt(amount)}
}

func TestAggregate(t *testing.T) {
	categories := []model.Category{
		category("food", "Food", 500),
		category("rent", "Rent", 1000),
	}
	expenses := []model.Expense{
		expense(t, "e1", "2024-03-05", "food", 120),
		expense(t, "e2", "2024-03-20", "food", 80),
		expense(t, "e3", "2024-03-01", "rent", 1000),
		expense(t, "e4", "2024-04-02", "food", 999), // outside the window
	}

	s := Aggregate(categories, expenses, window(t, "2024-03-01", "2024-03-31"))

	require.Len(t, s.Rows, 2)
	assert.Equal(t, "Food", s.Rows[0].Name)
	assert.True(t, s.Rows[0].Spent.Equal(decimal.NewFromInt(200)))
	assert.True(t, s.Rows[0].Remain.Equal(decimal.NewFromInt(300)))
	assert.True(t, s.Rows[0].Over.IsZero())

	assert.True(t, s.Rows[1].Spent.Equal(decimal.NewFromInt(1000)))
	assert.True(t, s.Rows[1].Remain.IsZero())

	assert.True(t, s.TotalBudget.Equal(decimal.NewFromInt(1500)))
	assert.True(t, s.TotalSpent.Equal(decimal.NewFromInt(1200)))
	assert.True(t, s.TotalRemain.Equal(decimal.NewFromInt(300)))
	assert.True(t, s.Unassigned.IsZero())
}

func TestAggregateNoExpenses(t *testing.T) {
	categories := []model.Category{category("food", "Food", 500)}

	s := Aggregate(categories, nil, window(t, "2024-03-01", "2024-03-31"))

	require.Len(t, s.Rows, 1)
	assert.True(t, s.Rows[0].Spent.IsZero())
	assert.True(t, s.Rows[0].Remain.Equal(decimal.NewFromInt(500)), "remain equals the full budget")
	assert.True(t, s.TotalSpent.IsZero())
}

func TestAggregateOverspend(t *testing.T) {
	categories := []model.Category{category("food", "Food", 100)}
	expenses := []model.Expense{expense(t, "e1", "2024-03-10", "food", 150)}

	s := Aggregate(categories, expenses, window(t, "2024-03-01", "2024-03-31"))

	assert.True(t, s.Rows[0].Remain.Equal(decimal.NewFromInt(-50)), "remain goes negative, it is not clamped")
	assert.True(t, s.Rows[0].Over.Equal(decimal.NewFromInt(50)))
}

func TestAggregateOrphanedExpenses(t *testing.T) {
	categories := []model.Category{category("food", "Food", 500)}
	expenses := []model.Expense{
		expense(t, "e1", "2024-03-10", "food", 100),
		expense(t, "e2", "2024-03-11", "deleted-cat", 40),
	}

	s := Aggregate(categories, expenses, window(t, "2024-03-01", "2024-03-31"))

	require.Len(t, s.Rows, 1, "orphans get no row of their own")
	assert.True(t, s.Unassigned.Equal(decimal.NewFromInt(40)))
	assert.True(t, s.TotalSpent.Equal(decimal.NewFromInt(140)), "grand total reconciles with the raw expenses")
	assert.True(t, s.TotalRemain.Equal(decimal.NewFromInt(360)))
}

func TestAggregateWindowBoundaries(t *testing.T) {
	categories := []model.Category{category("food", "Food", 500)}
	expenses := []model.Expense{
		expense(t, "e1", "2024-03-01", "food", 1), // first day
		expense(t, "e2", "2024-03-31", "food", 2), // last day
		expense(t, "e3", "2024-02-29", "food", 4), // day before
		expense(t, "e4", "2024-04-01", "food", 8), // day after
	}

	s := Aggregate(categories, expenses, window(t, "2024-03-01", "2024-03-31"))
	assert.True(t, s.Rows[0].Spent.Equal(decimal.NewFromInt(3)), "both boundary days are inclusive")
}

func TestAggregateDecimalAmounts(t *testing.T) {
	categories := []model.Category{category("coffee", "Coffee", 10)}
	expenses := []model.Expense{
		{ID: "e1", Date: mustDate(t, "2024-03-05"), CategoryID: "coffee", Amount: decimal.RequireFromString("3.15")},
		{ID: "e2", Date: mustDate(t, "2024-03-06"), CategoryID: "coffee", Amount: decimal.RequireFromString("2.85")},
	}

	s := Aggregate(categories, expenses, window(t, "2024-03-01", "2024-03-31"))
	assert.Equal(t, "6", s.Rows[0].Spent.String(), "cents sum exactly")
	assert.Equal(t, "4", s.Rows[0].Remain.String())
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestDailySeries(t *testing.T) {
	categories := []model.Category{
		category("food", "Food", 500),
		category("rent", "Rent", 1000),
	}
	expenses := []model.Expense{
		expense(t, "e1", "2024-03-02", "food", 20),
		expense(t, "e2", "2024-03-02", "food", 30),
		expense(t, "e3", "2024-03-04", "rent", 1000),
		expense(t, "e4", "2024-03-02", "gone", 99), // orphan, excluded
	}

	rows := DailySeries(categories, expenses, window(t, "2024-03-01", "2024-03-05"))

	require.Len(t, rows, 5, "one row per day of the window")
	assert.Equal(t, "2024-03-01", rows[0].Date.String())
	assert.Equal(t, "2024-03-05", rows[4].Date.String())

	for _, row := range rows {
		require.Len(t, row.Amounts, 2, "every category present on every day")
	}
	assert.True(t, rows[0].Amounts["food"].IsZero(), "days without spend are zero-filled")
	assert.True(t, rows[1].Amounts["food"].Equal(decimal.NewFromInt(50)), "same-day expenses accumulate")
	assert.True(t, rows[3].Amounts["rent"].Equal(decimal.NewFromInt(1000)))
}

func TestWriteCSV(t *testing.T) {
	s := Aggregate(
		[]model.Category{
			category("food", "Food, drink & snacks", 500),
			category("rent", "Rent", 1000),
		},
		[]model.Expense{expense(t, "e1", "2024-03-05", "food", 120)},
		window(t, "2024-03-01", "2024-03-31"),
	)

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, s))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Category,Budget,Spent,Remain", lines[0])
	assert.Equal(t, "Food  drink & snacks,500,120,380", lines[1], "commas in names become spaces")
	assert.Equal(t, "Rent,1000,0,1000", lines[2])
}
