// Package archive removes archives whose extracted counterpart already
// exists.
//
// The match is a name heuristic: an archive file is redundant when a sibling
// directory named exactly like its stem sits in the same directory. Archive
// contents are never inspected, so an unrelated directory that happens to
// share the stem will still cost the archive its life. This limitation is
// accepted; callers should not strengthen the check.
package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"sortd/internal/category"
	"sortd/internal/fsop"
)

// Failure describes one archive that could not be removed.
type Failure struct {
	Name string
	Err  error
}

// Result reports one reconciliation over the archive directory.
type Result struct {
	Removed  []string
	Failures []Failure
}

// Reconcile deletes every archive file directly inside dir that has a
// sibling directory named like its stem. Removal failures are collected,
// never fatal; the returned error covers only failure to enumerate dir.
func Reconcile(ctx context.Context, dir string, table *category.Table) (Result, error) {
	var result Result

	entries, err := os.ReadDir(dir)
	if err != nil {
		return result, fsop.WrapClassified("enumerate", dir, err)
	}

	dirs := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() {
			dirs[entry.Name()] = struct{}{}
		}
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !table.IsArchive(name) {
			continue
		}
		if _, extracted := dirs[stem(name)]; !extracted {
			continue
		}
		if err := fsop.RemoveFile(filepath.Join(dir, name)); err != nil {
			result.Failures = append(result.Failures, Failure{Name: name, Err: err})
			continue
		}
		result.Removed = append(result.Removed, name)
	}
	return result, nil
}

func stem(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return name
	}
	return name[:idx]
}
