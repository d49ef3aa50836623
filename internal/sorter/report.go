package sorter

import "time"

// Pass modes.
const (
	ModeFull        = "full"
	ModeIncremental = "incremental"
)

// Report summarizes one reconciliation pass.
type Report struct {
	PassID          string
	Mode            string
	Placed          int
	Uncategorized   int
	Quarantined     int
	ArchivesRemoved int
	Failed          int
	Skipped         int
	Duration        time.Duration
}

// Moved returns the number of items the pass relocated or deleted.
func (r Report) Moved() int {
	return r.Placed + r.Uncategorized + r.Quarantined + r.ArchivesRemoved
}
