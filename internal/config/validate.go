package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSorting(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.WatchDir) == "" {
		return errors.New("paths.watch_dir must be set")
	}
	if c.Paths.WatchDir == c.Paths.DataDir {
		return errors.New("paths.watch_dir and paths.data_dir must differ")
	}
	return nil
}

func (c *Config) validateSorting() error {
	for _, name := range c.Sorting.IgnoreDirs {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("sorting.ignore_dirs entry %q must be a bare directory name, not a path", name)
		}
	}
	return nil
}

func (c *Config) validateWatch() error {
	switch c.Watch.Mode {
	case "poll", "notify":
	default:
		return fmt.Errorf("watch.mode must be \"poll\" or \"notify\", got %q", c.Watch.Mode)
	}
	if c.Watch.PollInterval <= 0 {
		return errors.New("watch.poll_interval must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
