package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"q.log/twophase/server"
)

const defaultAddr = ":8080"

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve POST /solve until interrupted.

Requests carry an LP-language program (text/plain) or a YAML problem
(application/x-yaml) and are answered with a JSON report.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && rootOpts.config.Addr != "" {
				addr = rootOpts.config.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.New(addr, rootOpts.Logger()).Run(ctx); err != nil {
				return newFormatter(rootOpts, cmd).fail(ExitCommandError, ErrCodeGeneric, "server failed", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}
