package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/rkhozinov/php-config-transofrmer/pkg/config"
	"github.com/rkhozinov/php-config-transofrmer/pkg/log"
	"github.com/rkhozinov/php-config-transofrmer/pkg/pipeline"
	"github.com/rkhozinov/php-config-transofrmer/pkg/transform"
)

// DefaultConfigFile is looked up when --config is not given.
const DefaultConfigFile = ".phpcfgenv.yaml"

// 🔧 RootOpts carries flag state shared by every subcommand
type RootOpts struct {
	ConfigFile     string
	Debug          bool
	Pattern        string
	Async          bool
	NoSecretPolicy bool
}

// AddFlags registers the shared flags on the root command.
func (o *RootOpts) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", DefaultConfigFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&o.Pattern, "pattern", "", "glob for candidate files (default from config)")
	cmd.PersistentFlags().BoolVar(&o.Async, "async", false, "process files concurrently")
	cmd.PersistentFlags().BoolVar(&o.NoSecretPolicy, "no-secret-policy", false, "keep fallback defaults for secret-like constants")
}

// 🎯 Resolve loads the config file and applies flag and positional-argument
// overrides. A missing config file falls back to pure defaults unless
// --config was set explicitly.
func (o *RootOpts) Resolve(cmd *cobra.Command, args []string) (*config.Config, error) {
	ctx := cmd.Context()

	var cfg *config.Config
	_, err := os.Stat(o.ConfigFile)
	switch {
	case err == nil:
		cfg, err = config.Load(ctx, o.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
	case os.IsNotExist(err):
		if cmd.Flags().Changed("config") {
			return nil, errors.Errorf("config file not found: %s", o.ConfigFile)
		}
		cfg = config.Default()
	default:
		return nil, errors.Errorf("reading config file: %w", err)
	}

	if len(args) > 0 {
		cfg.Source = args[0]
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}
	if o.Pattern != "" {
		cfg.Pattern = o.Pattern
	}
	if o.Async {
		cfg.Async = true
	}
	if o.NoSecretPolicy {
		cfg.Secrets.OmitDefaults = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// 📣 ConsoleLogger builds the console logger for a command
func (o *RootOpts) ConsoleLogger(cmd *cobra.Command) *log.Logger {
	level := zerolog.InfoLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}
	return log.New(cmd.OutOrStdout(), level)
}

// 🏭 NewPipeline builds the transformer and pipeline for cfg
func NewPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	tr := transform.New(
		transform.WithEnvFunction(cfg.EnvFunction),
		transform.WithSecretPolicy(cfg.Secrets.OmitDefaults, cfg.Secrets.NamePatterns),
	)
	p, err := pipeline.New(pipeline.Options{
		Source:      cfg.Source,
		Output:      cfg.Output,
		Pattern:     cfg.Pattern,
		Async:       cfg.Async,
		Transformer: tr,
	})
	if err != nil {
		return nil, errors.Errorf("creating pipeline: %w", err)
	}
	return p, nil
}
