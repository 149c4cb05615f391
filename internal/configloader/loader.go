// Package configloader resolves the rule configuration: project config
// discovery, depth-first "extends" merging, and STYLEFMT_* environment
// overrides.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/yaklabco/stylefmt/internal/logging"
	"github.com/yaklabco/stylefmt/pkg/config"
	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/fsutil"
)

// ErrExtendsCycle is returned when config files extend each other in a loop.
var ErrExtendsCycle = errors.New("extends cycle")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// Basedir resolves relative "extends" entries. Empty means the
	// directory of the file that names them.
	Basedir string

	// IgnoreProjectConfig skips the upward search for a project config.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Path is the top-level config file, or empty if none was used.
	Path string

	// LoadedFrom lists the files that were actually loaded, extended files first.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration.
// Precedence (highest to lowest):
//  1. Environment variables (STYLEFMT_*)
//  2. The config file (opts.ExplicitPath or the discovered project config)
//  3. Files it extends, in order, each after its own extends
//  4. Defaults
//
// Every failure wraps format.ErrConfigResolution.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result, err := load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", format.ErrConfigResolution, err)
	}
	return result, nil
}

func load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)
	result := &LoadResult{}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	basedir := ""
	if opts.Basedir != "" {
		basedir = fsutil.Resolve(opts.Basedir, workDir)
	}

	switch {
	case opts.ExplicitPath != "":
		result.Path = fsutil.Resolve(opts.ExplicitPath, workDir)
	case !opts.IgnoreProjectConfig:
		found, err := FindProjectConfig(ctx, workDir)
		if err != nil {
			return nil, err
		}
		result.Path = found
	}

	merged := koanf.New(".")
	if result.Path != "" {
		layer, err := loadLayer(ctx, result.Path, basedir, nil, &result.LoadedFrom)
		if err != nil {
			return nil, err
		}
		if err := merged.Merge(layer); err != nil {
			return nil, fmt.Errorf("merge %s: %w", result.Path, err)
		}
	}

	if !opts.IgnoreEnv {
		if err := merged.Load(ruleEnvProvider(), nil); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg := config.NewConfig()
	if err := merged.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// Extends are consumed during loading.
	cfg.Extends = nil

	validation := Validate(cfg, merged.Keys(), result.Path)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	logger.Debug("resolved config",
		logging.FieldConfig, result.Path,
		"loaded_from", strings.Join(result.LoadedFrom, ","))

	result.Config = cfg
	return result, nil
}

// loadLayer reads path and merges it over the files it extends, depth first.
// stack holds the files currently being resolved and detects cycles.
func loadLayer(ctx context.Context, path, basedir string, stack []string, loaded *[]string) (*koanf.Koanf, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	if slices.Contains(stack, path) {
		return nil, fmt.Errorf("%w: %s", ErrExtendsCycle, strings.Join(append(stack, path), " -> "))
	}
	stack = append(stack, path)

	own, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}

	base := basedir
	if base == "" {
		base = filepath.Dir(path)
	}

	layer := koanf.New(".")
	for _, ext := range stringList(own, "extends") {
		extPath := fsutil.Resolve(ext, base)
		sub, err := loadLayer(ctx, extPath, basedir, stack, loaded)
		if err != nil {
			return nil, fmt.Errorf("%s extends %s: %w", path, ext, err)
		}
		if err := layer.Merge(sub); err != nil {
			return nil, fmt.Errorf("merge %s: %w", extPath, err)
		}
	}

	own.Delete("extends")
	if err := layer.Merge(own); err != nil {
		return nil, fmt.Errorf("merge %s: %w", path, err)
	}

	*loaded = append(*loaded, path)
	return layer, nil
}

// loadConfigFile parses one config file, JSON by extension, YAML otherwise.
func loadConfigFile(path string) (*koanf.Koanf, error) {
	if !fileExists(path) {
		return nil, fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
	}

	var parser koanf.Parser = yaml.Parser()
	if IsJSONConfig(path) {
		parser = json.Parser()
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", path, err)
	}
	return k, nil
}

// stringList reads key as a list, accepting a single string as well.
func stringList(k *koanf.Koanf, key string) []string {
	if s, ok := k.Get(key).(string); ok {
		return []string{s}
	}
	return k.Strings(key)
}
