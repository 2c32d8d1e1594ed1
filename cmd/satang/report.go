package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/satangdev/satang/internal/budget"
	"github.com/satangdev/satang/internal/cli"
)

func reportCmd() *cobra.Command {
	var (
		offsetFlag int
		fromFlag   string
		toFlag     string
		csvFlag    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize spending for a cycle or custom date range",
		Long: `Summarize budget vs spend either for a billing cycle (--offset) or for an
arbitrary inclusive date range (--from/--to). --csv writes the summary as a
CSV file with the header Category,Budget,Spent,Remain.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if (fromFlag == "") != (toFlag == "") {
				return fmt.Errorf("--from and --to must be used together")
			}

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := led.ApplyDueRecurrings(ctx, today()); err != nil {
				return err
			}

			var summary budget.Summary
			if fromFlag != "" {
				from, err := parseDateArg(fromFlag)
				if err != nil {
					return err
				}
				to, err := parseDateArg(toFlag)
				if err != nil {
					return err
				}
				if to.Before(from) {
					return fmt.Errorf("--to %s is before --from %s", to, from)
				}

				s, w := led.SummaryRange(from, to)
				summary = s
				fmt.Println(cli.FormatTitle(fmt.Sprintf("Report %s — %s",
					w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))))
			} else {
				if offsetFlag < 0 {
					offsetFlag = 0
				}
				s, w := led.Summary(time.Now(), offsetFlag)
				summary = s
				fmt.Println(cli.FormatTitle(fmt.Sprintf("Cycle report %s — %s",
					w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))))
			}

			printSummary(led, summary, newMoneyFormatter(led))

			if csvFlag != "" {
				f, err := os.Create(csvFlag)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", csvFlag, err)
				}
				defer f.Close()

				if err := budget.WriteCSV(f, summary); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %s", csvFlag)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offsetFlag, "offset", 0, "cycles to page back (0 = current)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "custom range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "custom range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&csvFlag, "csv", "", "write the summary to this CSV file")
	return cmd
}
