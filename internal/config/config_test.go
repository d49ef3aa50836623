package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultNormalizes(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Paths.WatchDir == "" {
		t.Fatal("watch dir should resolve to a default")
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("data dir not absolute: %s", cfg.Paths.DataDir)
	}
	if cfg.Watch.Mode != "poll" || cfg.Watch.PollInterval != 5 {
		t.Fatalf("unexpected watch defaults: %+v", cfg.Watch)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
watch_dir = "` + filepath.Join(dir, "inbox") + `"

[sorting]
ignore_dirs = ["node_modules", " trimmed "]

[watch]
mode = "NOTIFY"
poll_interval = 30

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %s exists=%v", resolved, exists)
	}
	if cfg.Watch.Mode != "notify" {
		t.Fatalf("mode not lowercased: %q", cfg.Watch.Mode)
	}
	if cfg.Watch.PollInterval != 30 {
		t.Fatalf("poll interval = %d", cfg.Watch.PollInterval)
	}
	if len(cfg.Sorting.IgnoreDirs) != 2 || cfg.Sorting.IgnoreDirs[1] != "trimmed" {
		t.Fatalf("ignore dirs not normalized: %v", cfg.Sorting.IgnoreDirs)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("file should not exist")
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("format = %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsBadMode(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	cfg.Watch.Mode = "inotify"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "watch.mode") {
		t.Fatalf("expected watch.mode error, got %v", err)
	}
}

func TestValidateRejectsIgnorePath(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	cfg.Sorting.IgnoreDirs = []string{"nested/dir"}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "ignore_dirs") {
		t.Fatalf("expected ignore_dirs error, got %v", err)
	}
}

func TestHistoryPathDefault(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/tmp/sortd-data"
	if got := cfg.HistoryPath(); got != filepath.Join("/tmp/sortd-data", "history.db") {
		t.Fatalf("HistoryPath = %s", got)
	}
	cfg.History.Path = "/elsewhere/history.db"
	if got := cfg.HistoryPath(); got != "/elsewhere/history.db" {
		t.Fatalf("HistoryPath override = %s", got)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/Downloads")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "Downloads") {
		t.Fatalf("ExpandPath = %s", got)
	}
}
