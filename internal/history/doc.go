// Package history persists an append-only journal of engine actions backed
// by SQLite.
//
// Every placement, quarantine, archive removal, and per-item failure becomes
// one row tagged with the pass ID that produced it, giving `sortd history` a
// queryable record of what the engine did and why. The journal is an
// observer: the engine works identically with a nil store, and recording
// failures are logged rather than propagated.
package history
