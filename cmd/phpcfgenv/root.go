package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rkhozinov/php-config-transofrmer/cmd/phpcfgenv/commands"
)

// newRootCmd assembles the CLI. A bare invocation behaves like the
// transform subcommand so `phpcfgenv src result` just works.
func newRootCmd() *cobra.Command {
	opts := &commands.RootOpts{}

	cmd := &cobra.Command{
		Use:   "phpcfgenv [src] [result]",
		Short: "Rewrite PHP define() constants to read from environment variables",
		Long: `phpcfgenv rewrites PHP configuration constants so each value is sourced
from an environment variable with the original literal as fallback:

    define('MAX_CONNECTIONS', 100);
becomes
    define('MAX_CONNECTIONS', getenv('MAX_CONNECTIONS', 100));

Files are read from the source directory and written to the output
directory; inputs are never modified.`,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts.Debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunTransform(cmd, opts, args)
		},
	}

	opts.AddFlags(cmd)
	cmd.AddCommand(
		commands.NewTransformCmd(opts),
		commands.NewPreviewCmd(opts),
		commands.NewStatsCmd(opts),
	)
	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}
