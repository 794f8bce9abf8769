// Package cli implements the twophase command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string

	// Settings from the config file, applied where flags were not given.
	config Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the twophase CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "twophase",
		Short: "twophase - two-phase simplex solver",
		Long: `Solve linear programs in standard equality form with the two-phase
simplex method. Every answer carries a certificate: the dual solution for
optimal problems, an improving ray for unbounded ones and a Farkas vector
for infeasible ones.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Config != "" {
				cfg, err := LoadConfig(opts.Config)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to load config", err)
				}
				opts.apply(cmd, cfg)
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "YAML config file")

	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewPhase1Command(opts))
	cmd.AddCommand(NewCanonicalCommand(opts))
	cmd.AddCommand(NewInverseCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// apply copies config values into opts for every global flag the user did
// not set explicitly.
func (opts *RootOptions) apply(cmd *cobra.Command, cfg Config) {
	opts.config = cfg
	if cfg.Format != "" && !cmd.Flags().Changed("format") {
		opts.Format = cfg.Format
	}
	if cfg.Verbose && !cmd.Flags().Changed("verbose") {
		opts.Verbose = true
	}
}

// Logger returns the logger configured by the root command, or the default
// logger when the command ran without it.
func (opts *RootOptions) Logger() *slog.Logger {
	if opts.logger == nil {
		return slog.Default()
	}
	return opts.logger
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
