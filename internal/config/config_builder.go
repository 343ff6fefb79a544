package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/projinit/internal/logger"
)

// configBuilder collects partial configs in priority order; earlier
// entries win when merged.
type configBuilder struct {
	configs []*Config
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*Config, 0, 4),
	}
}

func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	cfg := new(Config)
	for _, c := range b.configs {
		if err := mergo.Merge(cfg, c); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (b *configBuilder) withOverrides(overrides Config) *configBuilder {
	cfg := overrides
	if err := cfg.absolutize(""); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, &cfg)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error getting env configs: %w", err))
		return b
	}
	if err := cfg.absolutize(""); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, cfg)
	return b
}

// withFile reads <root>/config.yaml. A missing file is not an error.
func (b *configBuilder) withFile() *configBuilder {
	root, err := b.root()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	cfg, err := parseFile((&Config{Root: root}).ConfigFile())
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	if cfg == nil {
		return b
	}
	// Relative paths in the file are relative to the root.
	cfg.Root = ""
	if err := cfg.absolutize(root); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, cfg)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	root, err := b.root()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, &Config{
		Root:         root,
		TemplatesDir: filepath.Join(root, defaultTemplatesDir),
		LogLevel:     logger.DefaultLevel,
	})
	return b
}

// root returns the highest-priority Root collected so far, or the default.
func (b *configBuilder) root() (string, error) {
	for _, c := range b.configs {
		if c.Root != "" {
			return c.Root, nil
		}
	}
	return defaultRoot()
}

func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) absolutize(base string) error {
	var err error
	if c.Root, err = expandPath(c.Root, base); err != nil {
		return err
	}
	if c.TemplatesDir, err = expandPath(c.TemplatesDir, base); err != nil {
		return err
	}
	if c.EnvSource, err = expandPath(c.EnvSource, base); err != nil {
		return err
	}
	return nil
}
