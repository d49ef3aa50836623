package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"sortd/internal/cleaner"
	"sortd/internal/fsop"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "clean [directory]",
		Short: "Delete every regular file in a directory after confirmation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := cfg.Paths.WatchDir
			if len(args) == 1 {
				target = args[0]
			}

			files, err := cleaner.List(target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintf(out, "No files to delete in %s\n", target)
				return nil
			}

			rows := make([][]string, 0, len(files))
			for _, f := range files {
				rows = append(rows, []string{f.Name, humanize.Bytes(uint64(f.Size))})
			}
			printTable(out, []column{{"File", false}, {"Size", true}}, rows)
			fmt.Fprintf(out, "%d files, %s total\n",
				len(files), humanize.Bytes(uint64(cleaner.TotalSize(files))))

			ok, err := confirmDeletion(cmd, assumeYes, len(files))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Aborted; nothing deleted.")
				return nil
			}

			logger, err := ctx.consoleLogger()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("deleting"),
				progressbar.OptionClearOnFinish(),
			)
			result := cleaner.Delete(signalCtx, files, logger, func(cleaner.File) {
				_ = bar.Add(1)
			})

			fmt.Fprintf(out, "Deleted %d of %d files\n", result.Deleted, len(files))
			for _, failure := range result.Failures {
				fmt.Fprintf(out, "  failed: %s (%s)\n", failure.Name, fsop.Reason(failure.Err))
			}
			if result.Failed() > 0 {
				return fmt.Errorf("%d files could not be deleted", result.Failed())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without prompting")
	return cmd
}

// confirmDeletion requires an explicit go-ahead: the --yes flag, or a typed
// y/yes on an interactive terminal. Without a terminal and without the flag
// the command refuses rather than assuming consent.
func confirmDeletion(cmd *cobra.Command, assumeYes bool, count int) (bool, error) {
	if assumeYes {
		return true, nil
	}
	stdin, ok := cmd.InOrStdin().(*os.File)
	if !ok || !isatty.IsTerminal(stdin.Fd()) {
		return false, fmt.Errorf("refusing to delete %d files without confirmation (use --yes)", count)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Delete these %d files? [y/N] ", count)
	reader := bufio.NewReader(stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
