package localfs

import (
	"path/filepath"
	"strings"
)

// DefaultExcludeDir is the version-control metadata directory skipped by default.
const DefaultExcludeDir = ".git"

// IsExcludedName returns true if name matches one of the excluded directory names.
// Special entries "." and ".." are never excluded.
func IsExcludedName(name string, excluded []string) bool {
	if name == "." || name == ".." {
		return false
	}
	for _, ex := range excluded {
		if name == ex {
			return true
		}
	}
	return false
}

// WithinExcluded reports whether any segment of path names an excluded
// directory. path may be relative or absolute; the empty path and "." never
// match.
func WithinExcluded(path string, excluded []string) bool {
	if path == "" || path == "." {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if IsExcludedName(seg, excluded) {
			return true
		}
	}
	return false
}
