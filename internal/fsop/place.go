package fsop

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Place moves the item at src into destDir under a name that collides with
// nothing already there, and returns the final path. Files keep their
// extension with the conflict counter inserted before it; folders get the
// counter appended to the full name.
func Place(src, destDir string) (string, error) {
	base := filepath.Base(src)
	info, err := os.Lstat(src)
	if err != nil {
		return "", WrapClassified("stat", base, err)
	}

	target, err := NextAvailablePath(destDir, base, info.IsDir())
	if err != nil {
		return "", WrapClassified("probe destination for", base, err)
	}

	if err := move(src, target, info.IsDir()); err != nil {
		return "", err
	}
	return target, nil
}

// NextAvailablePath returns dir/base, or the first dir/base-with-counter
// variant that does not exist yet. The counter is unbounded; the result is
// deterministic for a given directory state but is not reserved, so a
// concurrent writer can still race the subsequent rename.
func NextAvailablePath(dir, base string, isDir bool) (string, error) {
	stem, ext := base, ""
	if !isDir {
		if idx := strings.LastIndexByte(base, '.'); idx > 0 {
			stem, ext = base[:idx], base[idx:]
		}
	}

	for counter := 0; ; counter++ {
		name := base
		if counter > 0 {
			name = fmt.Sprintf("%s_%d%s", stem, counter, ext)
		}
		candidate := filepath.Join(dir, name)
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// RemoveFile deletes a single file, classifying the failure.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil {
		return WrapClassified("remove", filepath.Base(path), err)
	}
	return nil
}

func move(src, target string, isDir bool) error {
	renameErr := os.Rename(src, target)
	if renameErr == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(renameErr, &linkErr) && errors.Is(linkErr.Err, unix.EXDEV) && !isDir {
		if err := copyThenRemove(src, target); err != nil {
			return err
		}
		return nil
	}
	return WrapClassified("move", filepath.Base(src), renameErr)
}

// copyThenRemove is the cross-device fallback for regular files. It is not
// atomic: a crash between copy and remove leaves the file in both places.
func copyThenRemove(src, target string) error {
	if err := copyFile(src, target); err != nil {
		_ = os.Remove(target)
		return WrapClassified("copy", filepath.Base(src), err)
	}
	if err := os.Remove(src); err != nil {
		return WrapClassified("remove source after copy", filepath.Base(src), err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
