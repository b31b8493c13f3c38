// Package validation provides input validation utilities for projtree.
package validation

import (
	"fmt"
	"strings"
)

// ValidateEntryName validates a single directory entry name (not a path).
//
// Returns an error if the name:
//   - Is empty
//   - Contains path separators (/ or \)
//   - Is "." or ".."
//   - Contains null bytes
func ValidateEntryName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("name contains null byte: %q", name)
	}

	// Reject path separators (both Unix and Windows style)
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name cannot contain path separators: %s", name)
	}

	if name == "." || name == ".." {
		return fmt.Errorf("name cannot be %q", name)
	}

	return nil
}
