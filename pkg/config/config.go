package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/rkhozinov/php-config-transofrmer/pkg/transform"
)

// Defaults applied when a field is absent from the config file.
const (
	DefaultSource      = "src"
	DefaultOutput      = "result"
	DefaultPattern     = "*.inc"
	DefaultEnvFunction = "getenv"
)

// PHP identifier shape for the env-lookup function name
var identPat = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔐 SecretsConfig controls the no-default policy for secret-like constants
type SecretsConfig struct {
	OmitDefaults bool     `json:"omit_defaults" yaml:"omit_defaults"` // drop the fallback for secret-like names
	NamePatterns []string `json:"name_patterns" yaml:"name_patterns"` // name substrings treated as secret-like
}

// 📚 Config represents the complete configuration
type Config struct {
	Source      string         `json:"source" yaml:"source"`             // input directory, never mutated
	Output      string         `json:"output" yaml:"output"`             // output directory
	Pattern     string         `json:"pattern" yaml:"pattern"`           // glob for candidate files
	EnvFunction string         `json:"env_function" yaml:"env_function"` // lookup function inserted on output
	Async       bool           `json:"async,omitempty" yaml:"async,omitempty"`
	Secrets     *SecretsConfig `json:"secrets,omitempty" yaml:"secrets,omitempty"`
}

// 🏭 Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	// Validate on a zero config only fills in defaults.
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if cfg.EnvFunction == "" {
		cfg.EnvFunction = DefaultEnvFunction
	}
	if !identPat.MatchString(cfg.EnvFunction) {
		return errors.Errorf("env_function %q is not a valid PHP identifier", cfg.EnvFunction)
	}

	cfg.Source = filepath.Clean(cfg.Source)
	cfg.Output = filepath.Clean(cfg.Output)
	if cfg.Source == cfg.Output {
		return errors.Errorf("source and output must be different directories")
	}

	if cfg.Secrets == nil {
		cfg.Secrets = &SecretsConfig{
			OmitDefaults: true,
			NamePatterns: transform.DefaultSecretMarkers(),
		}
	}
	if len(cfg.Secrets.NamePatterns) == 0 {
		cfg.Secrets.NamePatterns = transform.DefaultSecretMarkers()
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s/%s -> %s (%s)", cfg.Source, cfg.Pattern, cfg.Output, cfg.EnvFunction)
}
