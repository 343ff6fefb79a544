// Package config builds the explicit configuration value of projinit.
//
// A Config is assembled once at process start and passed to the components
// that need it. Sources, highest priority first:
//
//  1. command-line flags (the overrides passed to Load)
//  2. PROJINIT_* environment variables
//  3. the YAML file <root>/config.yaml
//  4. built-in defaults (root ~/.projinit, templates <root>/templates)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/projinit/internal/logger"
)

var (
	// ErrInvalidConfig indicates the merged configuration is unusable.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the process-wide configuration value.
type Config struct {
	// Root is the projinit data directory.
	// Env: PROJINIT_ROOT
	Root string `yaml:"-" env:"ROOT"`

	// TemplatesDir holds the template roots.
	// Env: PROJINIT_TEMPLATES_DIR
	TemplatesDir string `yaml:"templates_dir" env:"TEMPLATES_DIR"`

	// EnvSource is the base KEY=VALUE document; defaults to <TemplatesDir>/.env.
	// Env: PROJINIT_ENV_SOURCE
	EnvSource string `yaml:"env_source" env:"ENV_SOURCE"`

	// LogLevel is the diagnostic log level (debug, info, warn, error).
	// Env: PROJINIT_LOG_LEVEL
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PROJINIT_"

const (
	// configFileName is read from the root directory.
	configFileName = "config.yaml"

	defaultTemplatesDir = "templates"
)

// Load merges overrides with the environment, the config file and defaults.
func Load(overrides Config) (*Config, error) {
	return newConfigBuilder().
		withOverrides(overrides).
		withEnv().
		withFile().
		withDefaults().
		build()
}

// Paths returns the template layout described by the configuration.
func (c *Config) Paths() Paths {
	return NewPaths(c.TemplatesDir, c.EnvSource)
}

// ConfigFile returns the path of the YAML config file.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.Root, configFileName)
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if c.TemplatesDir == "" {
		return fmt.Errorf("%w: templates directory is empty", ErrInvalidConfig)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// defaultRoot returns ~/.projinit.
func defaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".projinit"), nil
}

// expandPath resolves a leading "~/" and makes p absolute relative to base.
func expandPath(p, base string) (string, error) {
	if p == "" {
		return "", nil
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	if !filepath.IsAbs(p) {
		if base == "" {
			return filepath.Abs(p)
		}
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p), nil
}
