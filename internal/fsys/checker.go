// Package fsys validates and counts entries in media library directories.
package fsys

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Checker inspects library directories on the local filesystem.
type Checker struct {
	log *slog.Logger
}

// NewChecker creates a new checker.
func NewChecker(log *slog.Logger) *Checker {
	if log == nil {
		log = slog.Default()
	}
	return &Checker{log: log.With("component", "fsys")}
}

// Check reports whether path is a usable library directory. Symlinks are
// followed; a broken symlink, a missing path, a non-directory, or an
// unreadable directory all return a descriptive error.
func (c *Checker) Check(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if _, lerr := os.Lstat(path); lerr == nil {
				return fmt.Errorf("broken symlink: %s", path)
			}
			return fmt.Errorf("does not exist: %s", path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}

	// Readability: opening the directory is the portable check.
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("not readable: %s", path)
	}
	f.Close()

	return nil
}

// Count returns the number of entries directly inside path. Files and
// subdirectories both count; entries that are broken symlinks are skipped.
// The count is not recursive.
func (c *Checker) Count(path string) (int, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", path, err)
	}

	count := 0
	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink != 0 {
			target := filepath.Join(path, entry.Name())
			if _, err := os.Stat(target); err != nil {
				c.log.Debug("skipping broken symlink", "path", target)
				continue
			}
		}
		count++
	}

	return count, nil
}
