// Package config provides run configuration for projtree.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rescale/projtree/internal/localfs"
	"github.com/rescale/projtree/internal/pathutil"
	"github.com/rescale/projtree/internal/validation"
)

// Validation errors
var (
	ErrMissingRoot    = errors.New("root path is required")
	ErrNoExcludeNames = errors.New("at least one excluded directory name is required")
)

// Config holds the options for a single run.
//
// There is no config file and no environment lookup: every value comes from
// the command line, with NewConfig supplying the defaults.
type Config struct {
	// Root is the directory the walk starts from.
	// Default: "." (the current working directory)
	Root string

	// Exclude lists directory names pruned from the walk together with
	// everything beneath them.
	// Default: [".git"]
	Exclude []string

	// Verbose enables debug logging on stderr.
	// Default: false
	Verbose bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Root:    ".",
		Exclude: []string{localfs.DefaultExcludeDir},
	}
}

// Validate checks if the configuration is valid.
// Returns nil if valid, or an error describing what's wrong.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.Root) == "" {
		return ErrMissingRoot
	}
	names := cfg.GetExcludeNames()
	if len(names) == 0 {
		return ErrNoExcludeNames
	}
	for _, name := range names {
		if err := validation.ValidateEntryName(name); err != nil {
			return fmt.Errorf("invalid exclude name: %w", err)
		}
	}
	return nil
}

// GetExcludeNames returns the exclude names with blanks and duplicates dropped.
func (cfg *Config) GetExcludeNames() []string {
	result := make([]string, 0, len(cfg.Exclude))
	seen := make(map[string]bool, len(cfg.Exclude))
	for _, name := range cfg.Exclude {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

// ResolvedRoot returns Root as an absolute, cleaned path.
func (cfg *Config) ResolvedRoot() (string, error) {
	return pathutil.ResolveAbsolutePath(cfg.Root)
}
