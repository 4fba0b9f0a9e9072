package commands

import (
	"context"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/rkhozinov/php-config-transofrmer/pkg/log"
	"github.com/rkhozinov/php-config-transofrmer/pkg/pipeline"
	"github.com/rkhozinov/php-config-transofrmer/pkg/report"
)

// NewTransformCmd creates a new transform command
func NewTransformCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "transform [src] [result]",
		Short: "Rewrite define() statements and write results to the output directory",
		Long: `Transform reads PHP config files from the source directory, rewrites
every define() with a literal value to read from an environment variable
with the original literal as fallback, and writes the results to the
output directory. Source files are never modified.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTransform(cmd, opts, args)
		},
	}
}

// 🏃 RunTransform is the transform action, shared with the bare root command
func RunTransform(cmd *cobra.Command, opts *RootOpts, args []string) error {
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

	consoleLog.Headerf("transforming %s -> %s", cfg.Source, cfg.Output)
	summary, err := p.Run(ctx)
	if err != nil {
		consoleLog.Error(err.Error())
		return errors.Errorf("running transform: %w", err)
	}

	if summary.FilesProcessed == 0 && len(summary.Errors) == 0 {
		consoleLog.Warningf("no files matching %s found in %s", cfg.Pattern, cfg.Source)
		return nil
	}

	logFileReports(ctx, consoleLog, summary)
	report.NewRenderer(cmd.OutOrStdout()).Summary(summary)

	if len(summary.Errors) > 0 {
		return errors.Errorf("%d of %d files failed", len(summary.Errors), len(summary.Errors)+summary.FilesProcessed)
	}
	consoleLog.Successf("%d transformations written to %s", summary.TotalTransformed, cfg.Output)
	return nil
}

// logFileReports prints one line per processed file, failures last.
func logFileReports(ctx context.Context, l *log.Logger, summary *pipeline.Summary) {
	for _, res := range summary.Files {
		l.LogFileReport(ctx, log.FileReport{
			Path:            res.Path,
			Transformed:     res.Transformed,
			AlreadyMigrated: res.AlreadyMigrated,
			Skipped:         res.Skipped,
		})
	}
	for _, fe := range summary.Errors {
		l.LogFileReport(ctx, log.FileReport{Path: fe.Path, Err: fe.Err})
	}
}
