// Package fsop implements the conflict-safe move primitive and the error
// taxonomy shared by every per-item filesystem operation.
//
// Place never overwrites: it probes destDir/base and appends _1, _2, ... —
// before the extension for files, after the whole name for folders — until a
// free path is found, then renames. Cross-device renames fall back to
// copy-then-remove for regular files. The probe-then-rename sequence is not
// atomic against concurrent external writers; the engine treats the
// resulting races as recoverable per-item failures.
//
// Failures are tagged with one of the exported sentinel errors so callers
// can report a stable reason without inspecting platform error strings.
package fsop
