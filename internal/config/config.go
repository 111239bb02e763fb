package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for any rejected setting.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultCopyright is the notice placed in the header block unless
// overridden or suppressed.
const DefaultCopyright = "Copyright 2020 Inesonic, LLC.\nAll rights reserved."

const (
	DefaultIndentation  = 4
	DefaultWidth        = 120
	DefaultVariable     = "declarations"
	DefaultType         = "static const unsigned char"
	DefaultSizeVariable = "declarationsSize"
	DefaultSizeType     = "static const unsigned long"
	DefaultLogLevel     = "warn"
)

// Config holds every setting that drives a single build-payload run.
// It is built once from Default overlaid with command line flags and is
// treated as read-only after Validate succeeds.
type Config struct {
	// Output is the destination file. Empty means standard output.
	Output string `yaml:"output"`
	// Description is placed below the copyright in a \file section.
	Description string `yaml:"description"`
	// Copyright is the notice copied line by line into the header block.
	Copyright string `yaml:"copyright"`
	// NoCopyright suppresses Copyright entirely.
	NoCopyright bool `yaml:"no_copyright"`
	// Indentation is the number of spaces per indentation step.
	Indentation int `yaml:"indentation"`
	// Width is the maximum column width of array content lines.
	Width int `yaml:"width"`
	// Namespace wraps the declarations in a C++ namespace when set.
	Namespace string `yaml:"namespace"`
	// CloseNamespace emits the closing brace for Namespace.
	CloseNamespace bool `yaml:"close_namespace"`
	// Variable is the array name, or the name suffix with multiple inputs.
	Variable string `yaml:"variable"`
	// Type is the declaration type of the array.
	Type string `yaml:"type"`
	// SizeVariable is the size constant name, or suffix with multiple inputs.
	SizeVariable string `yaml:"size_variable"`
	// SizeType is the declaration type of the size constant.
	SizeType string `yaml:"size_type"`
	// Compress wraps each payload in the length-prefixed zlib container.
	Compress bool `yaml:"compress"`
	// Logging configures diagnostic output.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty logs to stderr.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Copyright:    DefaultCopyright,
		Indentation:  DefaultIndentation,
		Width:        DefaultWidth,
		Variable:     DefaultVariable,
		Type:         DefaultType,
		SizeVariable: DefaultSizeVariable,
		SizeType:     DefaultSizeType,
		Compress:     true,
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ApplyDefaults fills in the log level when it was left empty. Names and
// types are kept as given: an empty variable name is a valid suffix when
// several inputs are combined.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
}

// Validate checks the configuration before any output is produced.
// Every returned error wraps ErrInvalidConfig.
func Validate(cfg *Config) error {
	if cfg.Indentation <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "indentation must be positive, got %d", cfg.Indentation)
	}
	if cfg.Width <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "width must be positive, got %d", cfg.Width)
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
		// ok
	default:
		return errors.Wrapf(ErrInvalidConfig, "invalid logging level: %s (allowed: debug, info, warn, error)", cfg.Logging.Level)
	}

	return nil
}

// ValidateNames rejects empty variable names when the identifiers get no
// file name prefix, that is for a single input or standard input.
func ValidateNames(cfg *Config, sources int) error {
	if sources > 1 {
		return nil
	}
	if strings.TrimSpace(cfg.Variable) == "" {
		return errors.Wrap(ErrInvalidConfig, "variable name cannot be empty")
	}
	if strings.TrimSpace(cfg.SizeVariable) == "" {
		return errors.Wrap(ErrInvalidConfig, "size variable name cannot be empty")
	}
	return nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return out, nil
}
