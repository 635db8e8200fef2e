// Package fs provides the small set of filesystem helpers the build
// engine and its illustrative rules need: directory creation and
// metadata preserving file copies.
package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Reregistered/games-framework/src/logging"
)

var log = logging.Log

// DirPermissions are the default permission bits applied to directories
// this package creates.
const DirPermissions = os.ModeDir | 0775

// EnsureDir ensures the given directory exists, creating parents as
// needed.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return err
	}
	return nil
}

// PathExists returns true if the given path exists, as a file or directory.
func PathExists(filename string) bool {
	_, err := os.Lstat(filename)
	return err == nil
}

// IsDirectory returns true if path exists and is a directory.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// RemoveAll removes path and everything under it, tolerating a path that
// doesn't exist (the original deploy tooling this is grounded on
// unconditionally deleted its destination even when absent; we tolerate
// that case rather than erroring, per the resolved open question).
func RemoveAll(path string) error {
	if !PathExists(path) {
		log.Debugf("RemoveAll: %s does not exist, nothing to do", path)
		return nil
	}
	return os.RemoveAll(path)
}

// CopyFile copies a single file from 'from' to 'to', preserving the mode
// bits of the source file. The destination's parent directory is created
// if necessary.
func CopyFile(from, to string) error {
	info, err := os.Stat(from)
	if err != nil {
		return err
	}
	if err := EnsureDir(filepath.Dir(to)); err != nil {
		return err
	}
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return os.Chtimes(to, info.ModTime(), info.ModTime())
}

