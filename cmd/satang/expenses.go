package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/satangdev/satang/internal/cli"
	"github.com/satangdev/satang/internal/ledger"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Log and review expenses",
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		dateFlag string
		noteFlag string
	)

	cmd := &cobra.Command{
		Use:   "add <category> <amount>",
		Short: "Log an expense",
		Long:  `Log an expense against a category. The category may be given by name or id.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cat, err := led.ResolveCategory(args[0])
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			date := today()
			if dateFlag != "" {
				if date, err = parseDateArg(dateFlag); err != nil {
					return err
				}
			}

			exp, err := led.AddExpense(ctx, date, cat.ID, amount, noteFlag)
			if err != nil {
				return err
			}

			money := newMoneyFormatter(led)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged %s on %q (%s)",
				money.Format(exp.Amount), cat.Name, exp.Date)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "expense date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&noteFlag, "note", "", "free-form note")
	return cmd
}

func listExpensesCmd() *cobra.Command {
	var (
		queryFlag    string
		categoryFlag string
		fromFlag     string
		toFlag       string
		minFlag      string
		maxFlag      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			filter := ledger.ExpenseFilter{Query: queryFlag}
			if categoryFlag != "" {
				cat, err := led.ResolveCategory(categoryFlag)
				if err != nil {
					return err
				}
				filter.CategoryID = cat.ID
			}
			if fromFlag != "" {
				if filter.From, err = parseDateArg(fromFlag); err != nil {
					return err
				}
			}
			if toFlag != "" {
				if filter.To, err = parseDateArg(toFlag); err != nil {
					return err
				}
			}
			if minFlag != "" {
				parsed, err := parseAmount(minFlag)
				if err != nil {
					return err
				}
				filter.MinAmount = &parsed
			}
			if maxFlag != "" {
				parsed, err := parseAmount(maxFlag)
				if err != nil {
					return err
				}
				filter.MaxAmount = &parsed
			}

			expenses := led.Expenses(filter)
			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses match."))
				return nil
			}

			money := newMoneyFormatter(led)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Note"))

			for _, exp := range expenses {
				note := exp.Note
				if note == "" {
					note = cli.SubtleStyle.Render("-")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortID(exp.ID), exp.Date, led.CategoryName(exp.CategoryID),
					money.Format(exp.Amount), note)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&queryFlag, "query", "", "substring match against notes")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "filter by category name or id")
	cmd.Flags().StringVar(&fromFlag, "from", "", "earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "latest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&minFlag, "min", "", "minimum amount")
	cmd.Flags().StringVar(&maxFlag, "max", "", "maximum amount")
	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			id := args[0]
			if len(id) < 36 {
				// Allow the short prefix shown by list.
				for _, exp := range led.Expenses(ledger.ExpenseFilter{}) {
					if strings.HasPrefix(exp.ID, id) {
						id = exp.ID
						break
					}
				}
			}

			if err := led.DeleteExpense(ctx, id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Expense deleted"))
			return nil
		},
	}
}
