package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"sortd/internal/logging"
)

// notifyLoop reacts to filesystem events on the watched directory. Bursts of
// events (a browser writing chunks, an unzip run) collapse into a single
// pass after a quiet debounce window. A safety ticker at the poll interval
// catches anything notifications missed.
func (w *Watcher) notifyLoop() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(w.cfg.Paths.WatchDir); err != nil {
		return err
	}

	safety := time.NewTicker(w.pollInterval)
	defer safety.Stop()

	// The timer starts stopped; the first event arms it.
	trigger := time.NewTimer(w.debounce)
	if !trigger.Stop() {
		<-trigger.C
	}

	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			trigger.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("filesystem notification error", logging.Error(err))
		case <-trigger.C:
			w.runPass()
		case <-safety.C:
			w.runPass()
		}
	}
}
