// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no candidate file exists in any searched directory.
var ErrNotFound = errors.New("no recipe file found")

// FindUpward searches startDir and then each of its parents for the first
// regular file whose name is one of names, trying names in order within
// each directory. It returns the absolute path of the match.
func FindUpward(startDir string, names ...string) (string, error) {
	if len(names) == 0 {
		panic("names must not be empty")
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("checking %s: %w", candidate, err)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or any parent directory (looked for %v)", ErrNotFound, startDir, names)
		}
		dir = parent
	}
}
