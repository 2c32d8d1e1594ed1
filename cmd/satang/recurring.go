package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/satangdev/satang/internal/cli"
	"github.com/satangdev/satang/internal/ledger"
	"github.com/satangdev/satang/internal/recurrence"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring charges",
		Long: `Manage recurring charge templates. Each template generates expense entries
on a monthly cadence; 'satang recurring apply' catches up everything that is
due, including templates several cycles behind.`,
	}

	cmd.AddCommand(addRecurringCmd())
	cmd.AddCommand(listRecurringsCmd())
	cmd.AddCommand(deleteRecurringCmd())
	cmd.AddCommand(applyRecurringsCmd())

	return cmd
}

func addRecurringCmd() *cobra.Command {
	var (
		startFlag       string
		everyFlag       int
		occurrencesFlag int
		untilFlag       string
		noteFlag        string
	)

	cmd := &cobra.Command{
		Use:   "add <category> <amount>",
		Short: "Add a recurring charge template",
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

			input := ledger.NewRecurringInput{
				CategoryID:  cat.ID,
				Amount:      amount,
				Note:        noteFlag,
				Start:       today(),
				EveryMonths: everyFlag,
			}
			if startFlag != "" {
				if input.Start, err = parseDateArg(startFlag); err != nil {
					return err
				}
			}
			if occurrencesFlag > 0 {
				input.Occurrences = &occurrencesFlag
			}
			if untilFlag != "" {
				until, err := parseDateArg(untilFlag)
				if err != nil {
					return err
				}
				input.Until = &until
			}

			tmpl, err := led.AddRecurring(ctx, input)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Added recurring charge on %q: %s every %d month(s) starting %s",
				cat.Name, tmpl.Amount, tmpl.EveryMonths, tmpl.Start)))
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "first due date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&everyFlag, "every", 1, "interval in months")
	cmd.Flags().IntVar(&occurrencesFlag, "occurrences", 0, "stop after this many instances (0 = unlimited)")
	cmd.Flags().StringVar(&untilFlag, "until", "", "stop after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&noteFlag, "note", "", "free-form note")
	return cmd
}

func listRecurringsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring charge templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rows := led.Recurrings(today())
			if len(rows) == 0 {
				fmt.Println(cli.InfoStyle.Render("No recurring charges. Use 'satang recurring add' to create one."))
				return nil
			}

			money := newMoneyFormatter(led)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Every"),
				cli.HeaderStyle.Render("Next due"),
				cli.HeaderStyle.Render("State"))

			for _, row := range rows {
				next := row.NextDue.String()
				if row.Due {
					next = cli.WarningStyle.Render(next + " (due)")
				}
				state := string(row.State)
				if row.State == recurrence.StateExhausted {
					state = cli.SubtleStyle.Render(state)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d mo\t%s\t%s\n",
					shortID(row.Template.ID),
					led.CategoryName(row.Template.CategoryID),
					money.Format(row.Template.Amount),
					row.Template.EveryMonths,
					next, state)
			}
			return nil
		},
	}
}

func deleteRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recurring charge template",
		Long:  `Delete a template. Expenses it already generated are kept.`,
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
				for _, row := range led.Recurrings(today()) {
					if strings.HasPrefix(row.Template.ID, id) {
						id = row.Template.ID
						break
					}
				}
			}

			if err := led.DeleteRecurring(ctx, id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Recurring charge deleted"))
			return nil
		},
	}
}

func applyRecurringsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Generate expenses for every due recurring charge",
		Long: `Run the catch-up pass: every template that is due generates its missed
expense instances and advances its cursor. Running apply twice in a row
generates nothing the second time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("Applying recurring charges"),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)

			applied, err := led.ApplyDueRecurrings(ctx, today())
			_ = bar.Finish()
			if err != nil {
				return err
			}

			if applied == 0 {
				fmt.Println(cli.InfoStyle.Render("Nothing due."))
				return nil
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Generated %d expense(s) from recurring charges", applied)))
			return nil
		},
	}
}
