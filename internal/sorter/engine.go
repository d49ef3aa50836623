package sorter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"sortd/internal/archive"
	"sortd/internal/category"
	"sortd/internal/config"
	"sortd/internal/fsop"
	"sortd/internal/history"
	"sortd/internal/logging"
)

// Engine runs reconciliation passes over the watched directory.
//
// Not safe for concurrent use: the driver must serialize passes and call
// FullScan exactly once before any IncrementalScan.
type Engine struct {
	cfg     *config.Config
	table   *category.Table
	logger  *slog.Logger
	journal *history.Store

	seen         map[string]struct{}
	fullScanDone bool
}

// New constructs an engine. The journal may be nil, in which case no history
// is recorded.
func New(cfg *config.Config, table *category.Table, logger *slog.Logger, journal *history.Store) *Engine {
	if table == nil {
		table = category.Default()
	}
	return &Engine{
		cfg:     cfg,
		table:   table,
		logger:  logging.NewComponentLogger(logger, "engine"),
		journal: journal,
		seen:    make(map[string]struct{}),
	}
}

// EnsureLayout verifies the watched directory exists and idempotently
// creates the category, uncategorized, and quarantine subdirectories.
func (e *Engine) EnsureLayout() error {
	info, err := os.Stat(e.cfg.Paths.WatchDir)
	if err != nil {
		return fmt.Errorf("watched directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watched path %s is not a directory", e.cfg.Paths.WatchDir)
	}
	for _, name := range e.table.Directories() {
		if err := os.MkdirAll(filepath.Join(e.cfg.Paths.WatchDir, name), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
	}
	return nil
}

// FullScan seeds the tracked-name set, sorting every untracked entry in the
// watched directory. Must run once before any incremental scan.
func (e *Engine) FullScan(ctx context.Context) (Report, error) {
	report, err := e.run(ctx, ModeFull)
	if err == nil {
		e.fullScanDone = true
	}
	return report, err
}

// IncrementalScan processes entries that appeared since the last pass, then
// reconciles the archive directory.
func (e *Engine) IncrementalScan(ctx context.Context) (Report, error) {
	if !e.fullScanDone {
		return Report{}, errors.New("incremental scan requires a completed full scan")
	}
	return e.run(ctx, ModeIncremental)
}

// Seen reports whether a top-level entry name has already been processed.
func (e *Engine) Seen(name string) bool {
	_, ok := e.seen[name]
	return ok
}

func (e *Engine) run(ctx context.Context, mode string) (Report, error) {
	report := Report{
		PassID: uuid.NewString(),
		Mode:   mode,
	}
	started := time.Now()
	logger := e.logger.With(logging.String(logging.FieldPass, report.PassID))

	entries, err := os.ReadDir(e.cfg.Paths.WatchDir)
	if err != nil {
		// The one fatal path: the watched directory itself is gone or
		// unreadable. The driver retries on its next tick.
		logger.Error("cannot enumerate watched directory",
			logging.String("dir", e.cfg.Paths.WatchDir),
			logging.Error(err),
		)
		return report, fsop.WrapClassified("enumerate", e.cfg.Paths.WatchDir, err)
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			// Shutdown requested: the current item already finished;
			// leave the rest for the next pass.
			break
		}
		name := entry.Name()
		if e.Seen(name) {
			continue
		}
		var remained bool
		if entry.IsDir() {
			remained = e.processFolder(logger, &report, name)
		} else {
			remained = e.processFile(logger, &report, name)
		}
		// Only names still present enter the tracked set. A successfully
		// relocated item frees its name, so a later arrival under the same
		// name is a new item and gets the conflict-suffix treatment.
		if remained {
			e.seen[name] = struct{}{}
		}
	}

	if mode == ModeIncremental && ctx.Err() == nil {
		e.reconcileArchives(ctx, logger, &report)
	}

	report.Duration = time.Since(started)
	logger.Info("pass completed",
		logging.String("mode", report.Mode),
		logging.Int("placed", report.Placed),
		logging.Int("uncategorized", report.Uncategorized),
		logging.Int("quarantined", report.Quarantined),
		logging.Int("archives_removed", report.ArchivesRemoved),
		logging.Int("failed", report.Failed),
		logging.Duration("duration", report.Duration),
	)
	return report, nil
}

func (e *Engine) processFile(logger *slog.Logger, report *Report, name string) (remained bool) {
	src := filepath.Join(e.cfg.Paths.WatchDir, name)

	destName := category.UncategorizedDir
	categoryName := ""
	if cat, ok := e.table.Classify(name); ok {
		destName = cat.Name
		categoryName = cat.Name
	}

	final, err := fsop.Place(src, filepath.Join(e.cfg.Paths.WatchDir, destName))
	if err != nil {
		e.itemFailed(logger, report, "place file", name, err)
		// A vanished item did not remain; its name must stay free for the
		// next arrival.
		return !errors.Is(err, fsop.ErrNotFound)
	}

	if categoryName == "" {
		report.Uncategorized++
		logger.Info("routed uncategorized file",
			logging.String("name", name),
			logging.String("dest", relName(e.cfg.Paths.WatchDir, final)),
		)
	} else {
		report.Placed++
		logger.Info("placed file",
			logging.String("name", name),
			logging.String("category", categoryName),
			logging.String("dest", relName(e.cfg.Paths.WatchDir, final)),
		)
	}
	e.record(history.Event{
		PassID:      report.PassID,
		Action:      history.ActionPlaced,
		Name:        name,
		Source:      src,
		Destination: final,
		Category:    categoryName,
	})
	return false
}

func (e *Engine) processFolder(logger *slog.Logger, report *Report, name string) (remained bool) {
	if !e.table.ShouldQuarantine(name, e.cfg.Sorting.IgnoreDirs) {
		report.Skipped++
		logger.Debug("leaving folder in place", logging.String("name", name))
		return true
	}

	src := filepath.Join(e.cfg.Paths.WatchDir, name)
	final, err := fsop.Place(src, filepath.Join(e.cfg.Paths.WatchDir, category.QuarantineDir))
	if err != nil {
		e.itemFailed(logger, report, "quarantine folder", name, err)
		return !errors.Is(err, fsop.ErrNotFound)
	}

	report.Quarantined++
	logger.Info("quarantined folder",
		logging.String("name", name),
		logging.String("dest", relName(e.cfg.Paths.WatchDir, final)),
	)
	e.record(history.Event{
		PassID:      report.PassID,
		Action:      history.ActionQuarantined,
		Name:        name,
		Source:      src,
		Destination: final,
	})
	return false
}

func (e *Engine) reconcileArchives(ctx context.Context, logger *slog.Logger, report *Report) {
	dir := filepath.Join(e.cfg.Paths.WatchDir, category.ArchiveCategory)
	result, err := archive.Reconcile(ctx, dir, e.table)
	if err != nil {
		logger.Warn("archive reconciliation skipped",
			logging.String("dir", dir),
			logging.Error(err),
		)
		return
	}

	for _, name := range result.Removed {
		report.ArchivesRemoved++
		logger.Info("removed redundant archive", logging.String("name", name))
		e.record(history.Event{
			PassID: report.PassID,
			Action: history.ActionArchiveRemoved,
			Name:   name,
			Source: filepath.Join(dir, name),
		})
	}
	for _, failure := range result.Failures {
		e.itemFailed(logger, report, "remove archive", failure.Name, failure.Err)
	}
}

func (e *Engine) itemFailed(logger *slog.Logger, report *Report, op, name string, err error) {
	report.Failed++
	logger.Warn("item failed",
		logging.String("op", op),
		logging.String("name", name),
		logging.String("reason", fsop.Reason(err)),
		logging.Error(err),
	)
	e.record(history.Event{
		PassID: report.PassID,
		Action: history.ActionFailed,
		Name:   name,
		Detail: fsop.Reason(err),
	})
}

func (e *Engine) record(event history.Event) {
	if e.journal == nil {
		return
	}
	if err := e.journal.Record(context.Background(), event); err != nil {
		e.logger.Warn("history record failed", logging.Error(err))
	}
}

func relName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
