package app

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidConfig marks a configuration the user has to fix.
var ErrInvalidConfig = errors.New("invalid configuration")

var (
	logLevels   = []string{"debug", "info", "warn", "error"}
	logFormats  = []string{"text", "json"}
	dumpFormats = []string{"yaml", "json"}
)

// Config holds everything a single invocation needs.
type Config struct {
	// File is the recipe file. When empty it is searched for upward from
	// SearchDir.
	File string
	// SearchDir is where the upward search starts, the process working
	// directory when empty.
	SearchDir string
	// WorkingDir overrides the directory recipes run in.
	WorkingDir string
	DotenvPath string

	List       bool
	Dump       bool
	DumpFormat string
	DryRun     bool

	LogLevel  string
	LogFormat string

	// Recipe is the requested recipe, empty for the default one.
	Recipe string
	Args   []string
}

// NewConfig fills in defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.DumpFormat == "" {
		cfg.DumpFormat = "yaml"
	}

	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("%w: log level %q, must be one of %v", ErrInvalidConfig, cfg.LogLevel, logLevels)
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("%w: log format %q, must be one of %v", ErrInvalidConfig, cfg.LogFormat, logFormats)
	}
	if !slices.Contains(dumpFormats, cfg.DumpFormat) {
		return nil, fmt.Errorf("%w: dump format %q, must be one of %v", ErrInvalidConfig, cfg.DumpFormat, dumpFormats)
	}
	if cfg.List && cfg.Dump {
		return nil, fmt.Errorf("%w: --list and --dump cannot be combined", ErrInvalidConfig)
	}
	if (cfg.List || cfg.Dump) && cfg.Recipe != "" {
		return nil, fmt.Errorf("%w: unexpected recipe %q with --list or --dump", ErrInvalidConfig, cfg.Recipe)
	}
	return &cfg, nil
}
