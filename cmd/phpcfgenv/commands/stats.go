package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/rkhozinov/php-config-transofrmer/pkg/log"
	"github.com/rkhozinov/php-config-transofrmer/pkg/report"
)

// NewStatsCmd creates a new stats command
func NewStatsCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [src]",
		Short: "Show statistics about define() statements in source files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.Resolve(cmd, args)
			if err != nil {
				return err
			}
			consoleLog := opts.ConsoleLogger(cmd)

			p, err := NewPipeline(cfg)
			if err != nil {
				return err
			}

			summary, err := p.Preview(ctx)
			if err != nil {
				consoleLog.Error(err.Error())
				return errors.Errorf("collecting statistics: %w", err)
			}

			if summary.FilesProcessed == 0 && len(summary.Errors) == 0 {
				consoleLog.Warningf("no files matching %s found in %s", cfg.Pattern, cfg.Source)
				return nil
			}

			report.NewRenderer(cmd.OutOrStdout()).Stats(summary, cfg.Source)

			if len(summary.Errors) > 0 {
				for _, fe := range summary.Errors {
					consoleLog.LogFileReport(ctx, log.FileReport{Path: fe.Path, Err: fe.Err})
				}
				return errors.Errorf("%d files failed", len(summary.Errors))
			}
			return nil
		},
	}
}
