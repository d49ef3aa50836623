// Package sorter implements the classification-and-reconciliation engine.
//
// An Engine owns the tracked-name set: the top-level entry names it has
// already processed and that still occupy the watched directory (failed
// items, reserved and ignored folders). Successfully relocating an item
// frees its name, so a later arrival under the same name counts as new and
// gets the conflict-suffix treatment. A full scan seeds the set while
// sorting pre-existing entries; incremental scans diff the current listing
// against it and process only newcomers, then run the archive reconciler.
// The set lives in memory only and is rebuilt by rescanning after a restart.
//
// The engine is synchronous and call-driven. It has no timing of its own;
// the watcher package decides when passes run and guarantees they never
// overlap. Per-item failures are logged, counted, and journaled but never
// abort a pass — only failure to enumerate the watched directory does.
package sorter
