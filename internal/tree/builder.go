package tree

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/rescale/projtree/internal/localfs"
	"github.com/rescale/projtree/internal/logging"
	"github.com/rescale/projtree/internal/pathutil"
)

// ErrNotDirectory is returned when the build root exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Options configures Build.
type Options struct {
	// Exclude lists directory names left out of the tree along with
	// everything beneath them. Nil means localfs.DefaultExcludeDir.
	Exclude []string

	// Logger receives per-directory debug lines and skipped-entry warnings.
	// Nil disables logging.
	Logger *logging.Logger
}

// Result is the outcome of a successful Build.
type Result struct {
	Root  *Node  // Unnamed node standing for the walk root
	Path  string // Absolute, cleaned walk root
	Dirs  int    // Directories in the tree, excluding the root
	Files int    // Files in the tree

	// Skipped collects the subdirectories that could not be read during the
	// walk, as a *multierror.Error. Nil when nothing was skipped.
	Skipped error
}

// Build walks the directory tree under root and returns it as a Node.
//
// The walk is top-down and keeps the filesystem's enumeration order. Within
// one directory, files are inserted when the directory is visited and each
// subdirectory when it is visited in turn, so files come first.
//
// Files are left out of any directory whose absolute path has a segment
// naming an excluded directory, which only happens when root itself lies
// inside one.
//
// A root that is missing, unreadable, or not a directory is an error.
// Subdirectories that cannot be read are left out and reported in
// Result.Skipped.
func Build(ctx context.Context, root string, opts Options) (*Result, error) {
	exclude := opts.Exclude
	if exclude == nil {
		exclude = []string{localfs.DefaultExcludeDir}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	absRoot, err := pathutil.ResolveAbsolutePath(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", absRoot, ErrNotDirectory)
	}

	var skipped *multierror.Error
	walkOpts := localfs.WalkOptions{
		ExcludeDirs: exclude,
		OnError: func(path string, err error) {
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable directory")
			skipped = multierror.Append(skipped, err)
		},
	}

	top := NewDir()
	err = localfs.Walk(ctx, absRoot, walkOpts, func(level *localfs.Level) error {
		segments, err := pathutil.SplitRelative(absRoot, level.Path)
		if err != nil {
			return err
		}

		current := top
		for _, seg := range segments {
			current = current.Descend(seg)
		}

		logger.Debug().
			Str("dir", level.Path).
			Int("files", len(level.Files)).
			Int("subdirs", len(level.Dirs)).
			Msg("visited")

		// A root inside an excluded directory keeps its skeleton but no files
		if localfs.WithinExcluded(level.Path, exclude) {
			return nil
		}
		for _, name := range level.Files {
			current.AddFile(name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dirs, files := top.Count()
	return &Result{
		Root:    top,
		Path:    absRoot,
		Dirs:    dirs,
		Files:   files,
		Skipped: skipped.ErrorOrNil(),
	}, nil
}
