package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"sortd/internal/category"
	"sortd/internal/config"
	"sortd/internal/history"
	"sortd/internal/logging"
	"sortd/internal/sorter"
)

// Run wires a full watcher process — journal, engine, pass loop, PID file —
// and blocks until ctx is canceled. This is the entry point the `sortd
// watch` command uses.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	pidPath := filepath.Join(cfg.Paths.DataDir, "sortd.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	var journal *history.Store
	if cfg.History.Enabled {
		store, err := history.Open(cfg.HistoryPath())
		if err != nil {
			// The journal is an observer; sorting continues without it.
			logger.Warn("history unavailable", logging.Error(err))
		} else {
			journal = store
			defer journal.Close()
		}
	}

	engine := sorter.New(cfg, category.Default(), logger, journal)
	w, err := New(cfg, engine, logger)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// RunOnce performs a single full scan without starting the loop, for the
// `sortd scan` command.
func RunOnce(ctx context.Context, cfg *config.Config, logger *slog.Logger) (sorter.Report, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return sorter.Report{}, err
	}

	var journal *history.Store
	if cfg.History.Enabled {
		store, err := history.Open(cfg.HistoryPath())
		if err != nil {
			logger.Warn("history unavailable", logging.Error(err))
		} else {
			journal = store
			defer journal.Close()
		}
	}

	engine := sorter.New(cfg, category.Default(), logger, journal)
	if err := engine.EnsureLayout(); err != nil {
		return sorter.Report{}, err
	}
	return engine.FullScan(ctx)
}

func writePIDFile(path string) error {
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
