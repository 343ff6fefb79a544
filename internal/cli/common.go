package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/danieljhkim/projinit/internal/clock"
	"github.com/danieljhkim/projinit/internal/config"
	"github.com/danieljhkim/projinit/internal/engine"
	"github.com/danieljhkim/projinit/internal/fsops"
	"github.com/danieljhkim/projinit/internal/hash"
	"github.com/danieljhkim/projinit/internal/logger"
)

// loadConfig builds the process configuration from the global flags,
// PROJINIT_* variables and the config file.
func loadConfig() (*config.Config, error) {
	overrides := config.Config{
		Root:         rootDir,
		TemplatesDir: templatesDir,
		EnvSource:    envSource,
	}
	if verbose {
		overrides.LogLevel = "debug"
	}
	return config.Load(overrides)
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(stderr, cfg.LogLevel)
	log.Debug().
		Str("templates", cfg.TemplatesDir).
		Str("env_source", cfg.Paths().EnvSource).
		Msg("configuration loaded")

	eng := engine.New(
		fsops.NewRealFS(),
		hash.NewSHA256Hasher(),
		&clock.RealClock{},
		cfg.Paths(),
		log.Component("engine"),
	)
	return eng, cfg, nil
}

// outputJSON writes a value as indented JSON to w.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
