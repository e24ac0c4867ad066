package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclecast/internal/cli"
	"github.com/terraincognita07/cyclecast/internal/db"
	"github.com/terraincognita07/cyclecast/internal/services"
)

func newPredictCommand(options *rootOptions) *cobra.Command {
	var rawDate string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Print the next period, ovulation day and fertile window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(options.rt, func(history *services.HistoryService, _ *db.Repositories) error {
				return cli.RunPredictCommand(history, cmd.OutOrStdout(), rawDate)
			})
		},
	}
	cmd.Flags().StringVar(&rawDate, "date", "", "cycle start as YYYY-MM-DD (default: latest recorded period)")
	return cmd
}

func newAnalyticsCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Print cycle statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(options.rt, func(history *services.HistoryService, _ *db.Repositories) error {
				return cli.RunAnalyticsCommand(history, cmd.OutOrStdout())
			})
		},
	}
}

func newExportCommand(options *rootOptions) *cobra.Command {
	var format, from, to string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write cycle entries to stdout as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(options.rt, func(history *services.HistoryService, _ *db.Repositories) error {
				return cli.RunExportCommand(services.NewExportService(history), cmd.OutOrStdout(), format, from, to, time.Now())
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or csv")
	cmd.Flags().StringVar(&from, "from", "", "first period start to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last period start to include (YYYY-MM-DD)")
	return cmd
}

func newImportCommand(options *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the cycle history with entries from a JSON or CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if strings.TrimSpace(format) == "" {
				format = importFormatFromPath(path)
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			return withHistory(options.rt, func(history *services.HistoryService, _ *db.Repositories) error {
				return cli.RunImportCommand(history, file, cmd.OutOrStdout(), format)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "json or csv (default: from file extension)")
	return cmd
}

func newResetPinCommand(options *rootOptions) *cobra.Command {
	var (
		interactive bool
		disable     bool
	)

	cmd := &cobra.Command{
		Use:   "reset-pin",
		Short: "Set a new PIN, or print a temporary one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive && disable {
				return errors.New("--interactive and --disable cannot be combined")
			}

			return withHistory(options.rt, func(_ *services.HistoryService, repositories *db.Repositories) error {
				out := cmd.OutOrStdout()
				if disable {
					return cli.RunDisablePinCommand(repositories.Preferences, out)
				}

				pin := ""
				if interactive {
					prompted, err := cli.PromptNewPin(os.Stdin, out)
					if err != nil {
						return err
					}
					pin = prompted
				}
				return cli.RunResetPinCommand(repositories.Preferences, out, pin)
			})
		},
	}
	cmd.Flags().BoolVar(&interactive, "interactive", false, "prompt for the new PIN instead of generating one")
	cmd.Flags().BoolVar(&disable, "disable", false, "turn the PIN lock off")
	return cmd
}

func withHistory(rt appRuntime, run func(*services.HistoryService, *db.Repositories) error) error {
	database, repositories, err := openDatabase(rt)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(database) }()

	return run(newHistoryService(rt, repositories), repositories)
}

func importFormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return "csv"
	}
	return "json"
}
