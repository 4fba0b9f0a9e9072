package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		Source      string `hcl:"source,optional"`
		Output      string `hcl:"output,optional"`
		Pattern     string `hcl:"pattern,optional"`
		EnvFunction string `hcl:"env_function,optional"`
		Async       bool   `hcl:"async,optional"`
		Secrets     *struct {
			OmitDefaults bool     `hcl:"omit_defaults,optional"`
			NamePatterns []string `hcl:"name_patterns,optional"`
		} `hcl:"secrets,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Source:      hclCfg.Source,
		Output:      hclCfg.Output,
		Pattern:     hclCfg.Pattern,
		EnvFunction: hclCfg.EnvFunction,
		Async:       hclCfg.Async,
	}
	if hclCfg.Secrets != nil {
		cfg.Secrets = &SecretsConfig{
			OmitDefaults: hclCfg.Secrets.OmitDefaults,
			NamePatterns: hclCfg.Secrets.NamePatterns,
		}
	}

	return cfg, nil
}
