package main

import (
	"io"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sortd/internal/sorter"
	"sortd/internal/watcher"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run a single reconciliation pass over the watched directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.consoleLogger()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			report, err := watcher.RunOnce(signalCtx, cfg, logger)
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func printReport(w io.Writer, report sorter.Report) {
	printTable(w, []column{{"Result", false}, {"Count", true}}, [][]string{
		{"Placed", strconv.Itoa(report.Placed)},
		{"Uncategorized", strconv.Itoa(report.Uncategorized)},
		{"Quarantined", strconv.Itoa(report.Quarantined)},
		{"Archives removed", strconv.Itoa(report.ArchivesRemoved)},
		{"Failed", strconv.Itoa(report.Failed)},
		{"Skipped", strconv.Itoa(report.Skipped)},
		{"Duration", report.Duration.Round(time.Millisecond).String()},
	})
}
