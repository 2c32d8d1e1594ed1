package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/satangdev/satang/internal/cli"
	"github.com/satangdev/satang/internal/common"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up or restore all data as JSON",
	}

	cmd.AddCommand(createBackupCmd())
	cmd.AddCommand(restoreBackupCmd())

	return cmd
}

func createBackupCmd() *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a backup file",
		Long:  `Write settings, categories, expenses and recurring charges as one JSON file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			path := outFlag
			if path == "" {
				path = fmt.Sprintf("satang_backup_%s.json", time.Now().Format("2006-01-02"))
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer f.Close()

			if err := led.Backup(f); err != nil {
				return err
			}

			common.LogInfo("backup written", common.Fields{"path": path})
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Backup written to %s", path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&outFlag, "out", "", "output file (default: satang_backup_<date>.json)")
	return cmd
}

func restoreBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore from a backup file",
		Long: `Replace all collections wholesale with the backup file's contents. This is
a full replacement, not a merge.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			if err := led.Restore(ctx, f); err != nil {
				return err
			}

			common.LogInfo("backup restored", common.Fields{"path": args[0]})
			fmt.Println(cli.FormatSuccess("Restore completed"))
			return nil
		},
	}
}
