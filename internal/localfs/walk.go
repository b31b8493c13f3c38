// Package localfs provides local filesystem traversal for projtree.
// Entries are reported in the filesystem's native enumeration order;
// nothing in this package sorts.
package localfs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/karrick/godirwalk"
)

// Level is one directory visited by Walk.
type Level struct {
	Path  string   // Full path to the directory
	Dirs  []string // Subdirectory names to descend into
	Links []string // Symlinks to directories (listed, never descended)
	Files []string // Every other entry: regular files, file symlinks, broken links, devices
}

// WalkFunc is the callback signature for Walk.
// Removing names from level.Dirs prunes them. Any non-nil error stops the walk
// and is returned from Walk.
type WalkFunc func(level *Level) error

// Walk traverses the tree rooted at root top-down, calling fn once for each
// directory before any of its subdirectories. Subdirectories are visited in
// the order they remain in Level.Dirs after fn returns.
//
// Symbolic links are never followed. A subdirectory that cannot be read is
// skipped and reported to opts.OnError; failing to read root is an error.
func Walk(ctx context.Context, root string, opts WalkOptions, fn WalkFunc) error {
	level, err := ReadLevel(root, opts)
	if err != nil {
		return err
	}
	return walkLevel(ctx, level, opts, fn)
}

func walkLevel(ctx context.Context, level *Level, opts WalkOptions, fn WalkFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(level); err != nil {
		return err
	}

	for _, name := range level.Dirs {
		sub, err := ReadLevel(filepath.Join(level.Path, name), opts)
		if err != nil {
			if opts.OnError != nil {
				opts.OnError(filepath.Join(level.Path, name), err)
			}
			continue
		}
		if err := walkLevel(ctx, sub, opts, fn); err != nil {
			return err
		}
	}
	return nil
}

// ReadLevel lists a single directory, classifying its entries the way Walk does.
func ReadLevel(dir string, opts WalkOptions) (*Level, error) {
	dirents, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	level := &Level{Path: dir}
	for _, de := range dirents {
		name := de.Name()
		switch {
		case de.IsDir():
			if IsExcludedName(name, opts.ExcludeDirs) {
				continue
			}
			level.Dirs = append(level.Dirs, name)

		case de.IsSymlink():
			// Broken links fail the stat and are listed as files
			if isDir, err := de.IsDirOrSymlinkToDir(); err == nil && isDir {
				if !IsExcludedName(name, opts.ExcludeDirs) {
					level.Links = append(level.Links, name)
				}
				continue
			}
			level.Files = append(level.Files, name)

		default:
			level.Files = append(level.Files, name)
		}
	}
	return level, nil
}
