package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"sortd/internal/config"
	"sortd/internal/logging"
	"sortd/internal/sorter"
)

// Watcher owns the pass loop and the single-instance lock.
type Watcher struct {
	cfg    *config.Config
	engine *sorter.Engine
	logger *slog.Logger

	lockPath string
	lock     *flock.Flock

	pollInterval time.Duration
	debounce     time.Duration

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New constructs a watcher around an engine.
func New(cfg *config.Config, engine *sorter.Engine, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || engine == nil {
		return nil, errors.New("watcher requires config and engine")
	}
	lockPath := filepath.Join(cfg.Paths.DataDir, "sortd.lock")
	return &Watcher{
		cfg:          cfg,
		engine:       engine,
		logger:       logging.NewComponentLogger(logger, "watcher"),
		lockPath:     lockPath,
		lock:         flock.New(lockPath),
		pollInterval: time.Duration(cfg.Watch.PollInterval) * time.Second,
		debounce:     time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
	}, nil
}

// Start acquires the instance lock, runs the initial full scan, and launches
// the pass loop. It returns once the loop is running.
func (w *Watcher) Start(ctx context.Context) error {
	if w.running.Load() {
		return errors.New("watcher already running")
	}

	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another sortd watcher is already running")
	}

	if err := w.engine.EnsureLayout(); err != nil {
		_ = w.lock.Unlock()
		return err
	}

	w.ctx, w.cancel = context.WithCancel(ctx)

	// The driver contract: exactly one full scan before any incremental.
	if _, err := w.engine.FullScan(w.ctx); err != nil {
		_ = w.lock.Unlock()
		w.cancel()
		return fmt.Errorf("initial full scan: %w", err)
	}

	w.running.Store(true)
	w.wg.Add(1)
	go w.loop()

	w.logger.Info("watching directory",
		logging.String("dir", w.cfg.Paths.WatchDir),
		logging.String("mode", w.cfg.Watch.Mode),
		logging.Int("poll_interval", w.cfg.Watch.PollInterval),
	)
	return nil
}

// Stop ends the pass loop, waits for the in-flight pass to finish its
// current item, and releases the lock.
func (w *Watcher) Stop() {
	if !w.running.Load() {
		return
	}
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	if err := w.lock.Unlock(); err != nil {
		w.logger.Warn("failed to release watcher lock", logging.Error(err))
	}
	w.running.Store(false)
	w.logger.Info("watcher stopped")
}

// Running reports whether the pass loop is active.
func (w *Watcher) Running() bool {
	return w.running.Load()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	if w.cfg.Watch.Mode == "notify" {
		if err := w.notifyLoop(); err == nil {
			return
		} else if !errors.Is(err, context.Canceled) {
			w.logger.Warn("filesystem notifications unavailable; falling back to polling",
				logging.Error(err),
			)
		} else {
			return
		}
	}
	w.pollLoop()
}

func (w *Watcher) pollLoop() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.runPass()
		}
	}
}

func (w *Watcher) runPass() {
	if _, err := w.engine.IncrementalScan(w.ctx); err != nil {
		// Already logged by the engine; retried on the next tick.
		return
	}
}
