package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/satangdev/satang/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage spending categories",
		Long:  `List, add, update, and delete the spending categories expenses are logged against.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories := led.Categories()
			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories yet. Use 'satang categories add' to create one."))
				return nil
			}

			money := newMoneyFormatter(led)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Budget"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 8), strings.Repeat("-", 20), strings.Repeat("-", 12))

			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\n", shortID(cat.ID), cat.Name, money.Format(cat.Budget))
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var (
		budgetFlag string
		colorFlag  string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			budget, err := parseAmount(budgetFlag)
			if err != nil {
				return err
			}

			cat, err := led.AddCategory(ctx, args[0], budget, colorFlag)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added category %q with budget %s", cat.Name, cat.Budget)))
			return nil
		},
	}

	cmd.Flags().StringVar(&budgetFlag, "budget", "0", "budget per cycle")
	cmd.Flags().StringVar(&colorFlag, "color", "", "hex color for the category badge")
	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		nameFlag   string
		budgetFlag string
		colorFlag  string
	)

	cmd := &cobra.Command{
		Use:   "update <category>",
		Short: "Update a category's name, budget, or color",
		Args:  cobra.ExactArgs(1),
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

			var budget *decimal.Decimal
			if budgetFlag != "" {
				parsed, err := parseAmount(budgetFlag)
				if err != nil {
					return err
				}
				budget = &parsed
			}

			if err := led.UpdateCategory(ctx, cat.ID, nameFlag, budget, colorFlag); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category %q", cat.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "new name")
	cmd.Flags().StringVar(&budgetFlag, "budget", "", "new budget per cycle")
	cmd.Flags().StringVar(&colorFlag, "color", "", "new hex color")
	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category>",
		Short: "Delete a category",
		Long: `Delete a category from the active set. Expenses already logged against it
are kept and show up as unassigned in summaries.`,
		Args: cobra.ExactArgs(1),
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
			if err := led.DeleteCategory(ctx, cat.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %q (its expenses are kept)", cat.Name)))
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
