// Package watcher drives the engine: it decides when reconciliation passes
// run and guarantees the engine's calling contract.
//
// A watcher runs exactly one full scan, then incremental scans forever —
// on a fixed poll interval, or in notify mode on debounced filesystem
// events with a low-frequency safety rescan. All passes execute on a single
// goroutine, so they never overlap. A flock-based lock enforces one watcher
// instance per data directory. Shutdown cancels the loop context; the
// in-flight pass finishes its current item before stopping.
package watcher
