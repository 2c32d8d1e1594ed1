package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satangdev/satang/internal/cli"
	"github.com/satangdev/satang/internal/model"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change application settings",
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingsCmd())

	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			settings := led.Settings()
			fmt.Printf("%s %d\n", cli.BoldStyle.Render("Cycle start day:"), settings.CycleStartDay)
			fmt.Printf("%s %s\n", cli.BoldStyle.Render("Currency:"), settings.Currency)
			fmt.Printf("%s %s\n", cli.BoldStyle.Render("Locale:"), settings.Locale)
			fmt.Printf("%s %t\n", cli.BoldStyle.Render("Rollover:"), settings.Rollover)
			return nil
		},
	}
}

func setSettingsCmd() *cobra.Command {
	var (
		cycleDayFlag int
		currencyFlag string
		localeFlag   string
		rolloverFlag bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long: `Change one or more settings. The cycle start day is clamped to 1-31; in
months shorter than the chosen day the cycle starts on the month's last day.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			settings := led.Settings()
			if cmd.Flags().Changed("cycle-day") {
				settings.CycleStartDay = cycleDayFlag
				if clamped := model.ClampCycleStartDay(cycleDayFlag); clamped != cycleDayFlag {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("cycle start day %d clamped to %d", cycleDayFlag, clamped)))
				}
			}
			if cmd.Flags().Changed("currency") {
				settings.Currency = currencyFlag
			}
			if cmd.Flags().Changed("locale") {
				settings.Locale = localeFlag
			}
			if cmd.Flags().Changed("rollover") {
				settings.Rollover = rolloverFlag
			}

			if err := led.UpdateSettings(ctx, settings); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Settings saved"))
			return nil
		},
	}

	cmd.Flags().IntVar(&cycleDayFlag, "cycle-day", 1, "billing cycle start day (1-31)")
	cmd.Flags().StringVar(&currencyFlag, "currency", "", "ISO currency code (e.g. THB, USD)")
	cmd.Flags().StringVar(&localeFlag, "locale", "", "locale tag (e.g. th-TH, en-US)")
	cmd.Flags().BoolVar(&rolloverFlag, "rollover", false, "carry unused budget into the next cycle")
	return cmd
}
