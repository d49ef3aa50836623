package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sortd/internal/category"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show bucket contents of the watched directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watched directory: %s\n", cfg.Paths.WatchDir)
			fmt.Fprintf(out, "Watch mode:        %s\n", cfg.Watch.Mode)
			if cfg.History.Enabled {
				fmt.Fprintf(out, "History journal:   %s\n", cfg.HistoryPath())
			}
			fmt.Fprintln(out)

			table := category.Default()
			rows := make([][]string, 0, len(table.Directories())+1)
			var loose int
			for _, name := range table.Directories() {
				count, size, err := bucketStats(filepath.Join(cfg.Paths.WatchDir, name))
				if err != nil {
					rows = append(rows, []string{displayName(name), "-", "-"})
					continue
				}
				rows = append(rows, []string{
					displayName(name),
					strconv.Itoa(count),
					humanize.Bytes(uint64(size)),
				})
			}
			if entries, err := os.ReadDir(cfg.Paths.WatchDir); err == nil {
				for _, entry := range entries {
					if !table.Reserved(entry.Name()) {
						loose++
					}
				}
			}

			printTable(out, []column{
				{"Bucket", false}, {"Items", true}, {"Size", true},
			}, rows)
			fmt.Fprintf(out, "Unsorted items at top level: %d\n", loose)
			return nil
		},
	}
}

// bucketStats counts direct children of dir and sums the regular-file sizes.
func bucketStats(dir string) (int, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, err
	}
	var size int64
	count := 0
	for _, entry := range entries {
		count++
		if !entry.Type().IsRegular() {
			continue
		}
		if info, err := entry.Info(); err == nil {
			size += info.Size()
		}
	}
	return count, size, nil
}

// displayName turns a bucket directory name into a heading, e.g.
// "Zip_Files" becomes "Zip Files". Bucket names are already cased; only the
// underscores need replacing.
func displayName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
