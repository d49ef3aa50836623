// Package testsupport provides shared fixtures for package tests: configs
// seeded with per-test temp directories and small file helpers.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"sortd/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The watched directory exists; history is disabled unless an option enables
// it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WatchDir = filepath.Join(base, "watch")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.History.Enabled = false

	if err := os.MkdirAll(cfg.Paths.WatchDir, 0o755); err != nil {
		t.Fatalf("mkdir watch dir: %v", err)
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithIgnoreDirs sets the quarantine ignore list on the test config.
func WithIgnoreDirs(names ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Sorting.IgnoreDirs = names
	}
}

// WithWatchMode overrides the driver mode on the test config.
func WithWatchMode(mode string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Watch.Mode = mode
	}
}

// WithHistory enables the journal, backed by a database under the data dir.
func WithHistory() ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.Enabled = true
	}
}
