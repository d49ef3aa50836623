package cleaner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"sortd/internal/fsop"
	"sortd/internal/logging"
)

// File is a deletion candidate.
type File struct {
	Name string
	Path string
	Size int64
}

// Failure records a file the cleaner could not delete.
type Failure struct {
	Name string
	Err  error
}

// Result summarizes a deletion run.
type Result struct {
	Deleted  int
	Failures []Failure
}

// Failed reports how many candidates could not be removed.
func (r Result) Failed() int {
	return len(r.Failures)
}

// List returns the regular files directly inside dir, in directory order.
// Subdirectories and symlinks are never candidates.
func List(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fsop.WrapClassified("enumerate", filepath.Base(dir), err)
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Vanished between ReadDir and Info; not a candidate anymore.
			continue
		}
		files = append(files, File{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// TotalSize sums the candidate sizes.
func TotalSize(files []File) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}

// Delete removes each candidate in turn. A failure on one file is logged and
// counted, never aborting the run; cancellation stops before the next file.
// The progress callback, if non-nil, fires after each attempt.
func Delete(ctx context.Context, files []File, logger *slog.Logger, progress func(File)) Result {
	log := logging.NewComponentLogger(logger, "cleaner")

	var result Result
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		if err := fsop.RemoveFile(f.Path); err != nil {
			result.Failures = append(result.Failures, Failure{Name: f.Name, Err: err})
			log.Warn("failed to delete file",
				logging.String("name", f.Name),
				logging.String("reason", fsop.Reason(err)),
				logging.Error(err),
			)
		} else {
			result.Deleted++
			log.Debug("deleted file", logging.String("name", f.Name))
		}
		if progress != nil {
			progress(f)
		}
	}
	return result
}
