// Package configloader resolves the effective gomobiledoc configuration from
// config files, environment variables and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yaklabco/gomobiledoc/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Empty means the
	// process working directory.
	WorkingDir string

	// ExplicitPath is a config file given with --config.
	ExplicitPath string

	// The Ignore flags skip a layer; tests use them to stay hermetic.
	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values. Its non-zero fields win over every other
	// layer.
	CLIConfig *config.Config
}

// LoadResult is the effective configuration and where it came from.
type LoadResult struct {
	Config *config.Config

	// Sources lists the layers that contributed, in merge order.
	Sources []Source

	// Warnings are non-fatal validation findings.
	Warnings []string
}

// Files returns the configuration files that were read, in merge order.
func (r *LoadResult) Files() []string {
	var files []string
	for _, src := range r.Sources {
		switch src.Layer {
		case LayerSystem, LayerUser, LayerProject, LayerExplicit:
			files = append(files, src.Path)
		}
	}
	return files
}

// Load merges, from lowest to highest precedence: defaults, the system file,
// the user file, the nearest project file, the --config file, GOMOBILEDOC_*
// variables and CLI flags. Each file is validated on its own so errors name
// the file; the merged result is validated again.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	files, err := fileSources(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("discover config files: %w", err)
	}

	result := &LoadResult{}
	cfg := config.NewConfig()

	for _, src := range files {
		fileCfg, err := loadConfigFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.Layer, err)
		}
		if validation := ValidateWithFile(fileCfg, src.Path); !validation.Valid() {
			return nil, &validation.Errors[0]
		}

		cfg = merge(cfg, fileCfg)
		result.Sources = append(result.Sources, src)
	}

	if !opts.IgnoreEnv {
		applied, err := LoadFromEnv(cfg)
		if err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
		if len(applied) > 0 {
			result.Sources = append(result.Sources, Source{Layer: LayerEnv, Path: strings.Join(applied, ",")})
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
		result.Sources = append(result.Sources, Source{Layer: LayerFlags})
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, warning := range validation.Warnings {
		result.Warnings = append(result.Warnings, warning.Error())
	}

	result.Config = cfg
	return result, nil
}

// fileSources lists the config files to read, in merge order.
func fileSources(ctx context.Context, opts LoadOptions) ([]Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sources []Source
	add := func(layer, path string) {
		if path != "" {
			sources = append(sources, Source{Layer: layer, Path: path})
		}
	}

	if !opts.IgnoreSystemConfig {
		add(LayerSystem, systemConfigFile())
	}
	if !opts.IgnoreUserConfig {
		add(LayerUser, userConfigFile())
	}
	if !opts.IgnoreProjectConfig {
		project, err := FindProjectConfig(ctx, opts.WorkingDir)
		if err != nil {
			return nil, err
		}
		add(LayerProject, project)
	}
	add(LayerExplicit, opts.ExplicitPath)

	return sources, nil
}

func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
