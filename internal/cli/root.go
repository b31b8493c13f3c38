// Package cli provides the command-line interface for projtree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rescale/projtree/internal/config"
	"github.com/rescale/projtree/internal/logging"
	"github.com/rescale/projtree/internal/tree"
	"github.com/rescale/projtree/internal/version"
)

// Global logger
var logger *logging.Logger

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg := config.NewConfig()
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "projtree [path]",
		Short: "Print the structure of a directory tree",
		Long: `projtree ` + version.Version + ` - Built: ` + version.BuildTime + `
Walks a directory tree and prints it as an indented listing.

With no arguments the current working directory is listed. Version-control
metadata directories (.git by default) and everything beneath them are
skipped. Entries appear in the order the filesystem returns them; within a
directory, files are listed before subdirectories.

Output format:
  Top-level entries are printed as-is. Deeper entries are indented two
  spaces per level and prefixed with "/". An empty directory below the top
  level is followed by an "(empty)" line.`,
		Example: `  projtree
  projtree ./src
  projtree --exclude .git --exclude node_modules ~/work/project`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger
			logger = logging.NewLogger(cmd.ErrOrStderr())
			if cfg.Verbose || debug {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				logging.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Root = args[0]
			}
			return runTree(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	rootCmd.Flags().StringSliceVar(&cfg.Exclude, "exclude", cfg.Exclude, "Directory names to skip, with everything beneath them (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output (shows debug messages on stderr)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"

	rootCmd.AddCommand(newCompletionCmd(rootCmd))
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

// runTree builds the tree described by cfg and prints it to out.
func runTree(ctx context.Context, out io.Writer, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	root, err := cfg.ResolvedRoot()
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	log := GetLogger()
	log.Debug().Str("root", root).Strs("exclude", cfg.GetExcludeNames()).Msg("walking")

	result, err := tree.Build(ctx, root, tree.Options{
		Exclude: cfg.GetExcludeNames(),
		Logger:  log,
	})
	if err != nil {
		return err
	}
	if result.Skipped != nil {
		log.Warnf("Some directories could not be read and were left out")
	}
	log.Debug().Int("dirs", result.Dirs).Int("files", result.Files).Msg("walk complete")

	return tree.Print(out, result.Root)
}

// Execute runs the CLI.
func Execute() error {
	// Create a context that can be cancelled by signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			// Channel close yields nil and ends the loop
			if sig != nil {
				cancel()
			}
		}
	}()

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}

	// Clean up signal handler
	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return logger
}
