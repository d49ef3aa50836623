// Package cleaner implements the bulk file cleanup used by `sortd clean`.
// It deletes the regular files directly inside a directory, one at a time,
// reporting per-file failures without aborting the run. It shares no state
// with the sorting engine; confirmation belongs to the caller.
package cleaner
