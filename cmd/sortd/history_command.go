package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sortd/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sorting actions from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			events, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No recorded actions yet.")
				return nil
			}

			rows := make([][]string, 0, len(events))
			for _, event := range events {
				rows = append(rows, []string{
					humanize.Time(event.CreatedAt),
					actionLabel(event.Action),
					event.Name,
					eventTarget(event),
				})
			}
			printTable(out, []column{
				{"When", false}, {"Action", false}, {"Name", false}, {"Target", false},
			}, rows)

			totals, err := store.CountByAction(cmd.Context())
			if err != nil {
				return fmt.Errorf("summarize history: %w", err)
			}
			fmt.Fprintln(out, formatTotals(totals))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of actions to show")
	return cmd
}

var actionCaser = cases.Title(language.English)

// actionLabel turns a journal action key into its display form, e.g.
// "archive_removed" becomes "Archive Removed".
func actionLabel(action string) string {
	return actionCaser.String(strings.ReplaceAll(action, "_", " "))
}

func eventTarget(event history.Event) string {
	switch event.Action {
	case history.ActionFailed:
		return event.Detail
	case history.ActionArchiveRemoved:
		return "(deleted)"
	default:
		return event.Destination
	}
}

func formatTotals(totals map[string]int64) string {
	if len(totals) == 0 {
		return "Totals: none"
	}
	actions := make([]string, 0, len(totals))
	for action := range totals {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		parts = append(parts, action+"="+strconv.FormatInt(totals[action], 10))
	}
	return "Totals: " + strings.Join(parts, " ")
}
