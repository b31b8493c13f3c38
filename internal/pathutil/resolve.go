// Package pathutil provides path resolution utilities for projtree.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveAbsolutePath converts path to an absolute, cleaned path.
//
// An empty path resolves to the current working directory, and a leading ~
// expands to the user's home directory. Symlinks are left as they are so that
// paths computed relative to the result during a walk stay consistent with
// what the user typed.
func ResolveAbsolutePath(path string) (string, error) {
	if path == "" {
		return os.Getwd()
	}

	// Expand ~ to home directory
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = home + path[1:]
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(absPath), nil
}

// SplitRelative returns the segments of target relative to base.
// target equal to base yields no segments.
func SplitRelative(base, target string) ([]string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return nil, err
	}
	if rel == "." {
		return nil, nil
	}
	return strings.Split(rel, string(filepath.Separator)), nil
}
