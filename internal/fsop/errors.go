package fsop

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Sentinel markers for per-item failure classification. Every error leaving
// this package wraps exactly one of them.
var (
	ErrNotFound      = errors.New("not found")
	ErrPermission    = errors.New("permission denied")
	ErrAlreadyExists = errors.New("already exists")
	ErrIO            = errors.New("i/o failure")
)

// Classify maps a filesystem error onto the taxonomy marker it belongs to.
// Nil stays nil; anything unrecognized is ErrIO.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	case errors.Is(err, fs.ErrExist):
		return ErrAlreadyExists
	default:
		return ErrIO
	}
}

// Wrap builds an error carrying operation and item context while tagging it
// with the given marker for later classification.
func Wrap(marker error, op, name string, err error) error {
	detail := buildDetail(op, name)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// WrapClassified classifies err and wraps it with operation context.
func WrapClassified(op, name string, err error) error {
	return Wrap(Classify(err), op, name, err)
}

// Reason returns the taxonomy label for a wrapped error, for log lines and
// history rows.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPermission):
		return "permission_denied"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	default:
		return "io_failure"
	}
}

func buildDetail(op, name string) string {
	parts := make([]string, 0, 2)
	if op = strings.TrimSpace(op); op != "" {
		parts = append(parts, op)
	}
	if name = strings.TrimSpace(name); name != "" {
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return "filesystem operation"
	}
	return strings.Join(parts, " ")
}
