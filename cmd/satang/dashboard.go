package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/satangdev/satang/internal/budget"
	"github.com/satangdev/satang/internal/cli"
	"github.com/satangdev/satang/internal/ledger"
)

func dashboardCmd() *cobra.Command {
	var (
		offsetFlag int
		dailyFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the budget-vs-spend summary for a billing cycle",
		Long: `Show per-category budget, spend and remainder for the current billing
cycle. --offset pages back through past cycles; due recurring charges are
applied first so the numbers are current.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			// Catch up recurring charges before summarizing.
			if _, err := led.ApplyDueRecurrings(ctx, today()); err != nil {
				return err
			}

			if offsetFlag < 0 {
				offsetFlag = 0
			}

			now := time.Now()
			summary, window := led.Summary(now, offsetFlag)
			money := newMoneyFormatter(led)

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Cycle %s — %s",
				window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))))
			printSummary(led, summary, money)

			if dailyFlag {
				fmt.Println()
				printDaily(led, led.DailyBreakdown(now, offsetFlag), money)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offsetFlag, "offset", 0, "cycles to page back (0 = current)")
	cmd.Flags().BoolVar(&dailyFlag, "daily", false, "include the per-day breakdown")
	return cmd
}

func printSummary(led *ledger.Ledger, summary budget.Summary, money *cli.MoneyFormatter) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Budget"),
		cli.HeaderStyle.Render("Spent"),
		cli.HeaderStyle.Render("Remain"))

	for _, row := range summary.Rows {
		remain := money.Format(row.Remain)
		if row.Remain.IsNegative() {
			remain = cli.ErrorStyle.Render(remain)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			row.Name, money.Format(row.Budget), money.Format(row.Spent), remain)
	}

	if summary.Unassigned.IsPositive() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			cli.SubtleStyle.Render("(unassigned)"), "-", money.Format(summary.Unassigned), "-")
	}

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", strings.Repeat("-", 12),
		strings.Repeat("-", 10), strings.Repeat("-", 10), strings.Repeat("-", 10))

	totalRemain := money.Format(summary.TotalRemain)
	if summary.TotalRemain.IsNegative() {
		totalRemain = cli.ErrorStyle.Render(totalRemain)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("Total"),
		money.Format(summary.TotalBudget), money.Format(summary.TotalSpent), totalRemain)
}

func printDaily(led *ledger.Ledger, days []budget.DayRow, money *cli.MoneyFormatter) {
	categories := led.Categories()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	header := []string{cli.HeaderStyle.Render("Date")}
	for _, cat := range categories {
		header = append(header, cli.HeaderStyle.Render(cat.Name))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, day := range days {
		cells := []string{day.Date.String()}
		for _, cat := range categories {
			amount := day.Amounts[cat.ID]
			if amount.IsZero() {
				cells = append(cells, cli.SubtleStyle.Render("·"))
			} else {
				cells = append(cells, money.Format(amount))
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
}
