package localfs

// WalkOptions configures the behavior of Walk.
type WalkOptions struct {
	// ExcludeDirs lists directory names that are never descended into and
	// never reported by Walk. Matching is on the base name only.
	// Example: []string{".git"}
	ExcludeDirs []string

	// OnError is called for a subdirectory that cannot be read mid-walk.
	// The directory is skipped and the walk continues. Errors reading the
	// walk root are returned from Walk instead.
	OnError func(path string, err error)
}
