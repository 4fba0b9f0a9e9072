package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/rkhozinov/php-config-transofrmer/pkg/log"
	"github.com/rkhozinov/php-config-transofrmer/pkg/report"
)

// NewPreviewCmd creates a new preview command
func NewPreviewCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [src] [result]",
		Short: "Show the changes a transform run would make, without writing",
		Args:  cobra.MaximumNArgs(2),
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
				return errors.Errorf("running preview: %w", err)
			}

			if summary.FilesProcessed == 0 && len(summary.Errors) == 0 {
				consoleLog.Warningf("no files matching %s found in %s", cfg.Pattern, cfg.Source)
				return nil
			}

			report.NewRenderer(cmd.OutOrStdout()).Preview(summary, cfg.Source, cfg.Output)

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
