package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSorting()
	c.normalizeWatch()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WatchDir) == "" {
		c.Paths.WatchDir = defaultDownloadsDir()
	}
	if c.Paths.WatchDir, err = ExpandPath(c.Paths.WatchDir); err != nil {
		return fmt.Errorf("paths.watch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = ExpandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSorting() {
	cleaned := make([]string, 0, len(c.Sorting.IgnoreDirs))
	for _, name := range c.Sorting.IgnoreDirs {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cleaned = append(cleaned, name)
	}
	c.Sorting.IgnoreDirs = cleaned
}

func (c *Config) normalizeWatch() {
	c.Watch.Mode = strings.ToLower(strings.TrimSpace(c.Watch.Mode))
	if c.Watch.Mode == "" {
		c.Watch.Mode = defaultWatchMode
	}
	if c.Watch.PollInterval <= 0 {
		c.Watch.PollInterval = defaultPollInterval
	}
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = defaultDebounceMS
	}
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		return nil
	}
	expanded, err := ExpandPath(c.History.Path)
	if err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	c.History.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// defaultDownloadsDir resolves the platform downloads location, falling back
// to ~/Downloads and finally the home directory itself.
func defaultDownloadsDir() string {
	if dir := strings.TrimSpace(xdg.UserDirs.Download); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/Downloads"
	}
	return filepath.Join(home, "Downloads")
}
