// SPDX-License-Identifier: Apache-2.0

// Package config loads the logchunks configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/goccy/go-yaml"

	"github.com/logchunks/logchunks/internal/prefix"
	"github.com/logchunks/logchunks/internal/render"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".logchunks.yaml"

// DefaultOutputDir is where chunks are written when no directory is given.
const DefaultOutputDir = "chunked_results"

// Config is the full configuration surface.
type Config struct {
	// Debug enables progress logging.
	Debug bool `yaml:"debug" json:"debug"`
	// PrefixPattern is a regular expression with exactly one capture group
	// used to tag chunk filenames. Empty disables tagging.
	PrefixPattern string `yaml:"prefix_pattern" json:"prefix_pattern"`
	// OutputDir is the default destination for split chunks.
	OutputDir string         `yaml:"output_dir" json:"output_dir"`
	Renderer  RendererConfig `yaml:"renderer" json:"renderer"`
}

// RendererConfig configures the external rebot invocation.
type RendererConfig struct {
	Binary  string        `yaml:"binary" json:"binary"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Debug:     true,
		OutputDir: DefaultOutputDir,
		Renderer: RendererConfig{
			Binary: render.DefaultBinary,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is true.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// schema constrains Config as it is encoded by cue's Go encoder.
const schema = `
#Config: {
	debug:          bool
	prefix_pattern: string
	output_dir:     string & !=""
	renderer: {
		binary:  string & !=""
		timeout: int & >=0
	}
}
`

// Validate checks cfg against the schema and compiles the prefix pattern.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	def := ctx.CompileString(schema).LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	if err := def.Unify(ctx.Encode(c)).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.PrefixResolver(); err != nil {
		return err
	}
	return nil
}

// PrefixResolver compiles the prefix pattern.
func (c Config) PrefixResolver() (*prefix.Resolver, error) {
	return prefix.New(c.PrefixPattern)
}

// NewRenderer builds the rebot renderer described by the configuration.
func (c Config) NewRenderer() *render.Rebot {
	return render.NewRebot(c.Renderer.Binary, c.Renderer.Timeout)
}
