// Package config loads, normalizes, and validates sortd configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and resolves the platform Downloads
// directory when no watch directory is configured. The Config type
// centralizes every knob the watcher and CLI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths, canonical log formats, and clear validation
// errors.
package config
