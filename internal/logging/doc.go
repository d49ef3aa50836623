// Package logging builds the slog loggers used across sortd.
//
// It offers a console handler that prints one compact key=value line per
// event and a JSON handler for machine consumption, both writing to stdout
// and an optional log file. Attr helpers keep call sites terse, and NewNop
// gives tests a silent logger.
package logging
