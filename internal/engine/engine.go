// Package engine provides the core business logic for projinit operations.
//
// The engine package acts as the orchestration layer between CLI commands
// and the lower-level packages. It resolves the destination, enforces the
// non-empty destination policy, builds the layer sequence, runs the overlay
// composer and writes the synthesized environment document.
//
// Key components:
//   - Engine: Main orchestrator called by the CLI
//   - Init: Composes a new project from template layers
//   - GenerateEnv: Synthesizes an environment document on its own
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/danieljhkim/projinit/internal/clock"
	"github.com/danieljhkim/projinit/internal/config"
	"github.com/danieljhkim/projinit/internal/envprofile"
	"github.com/danieljhkim/projinit/internal/fsops"
	"github.com/danieljhkim/projinit/internal/hash"
	"github.com/danieljhkim/projinit/internal/logger"
	"github.com/danieljhkim/projinit/internal/project"
)

// EnvFileRelPath is where Init writes the environment document, relative
// to the destination.
const EnvFileRelPath = "api/.env"

// envFileMode is the permission of generated environment documents.
const envFileMode os.FileMode = 0644

// Engine orchestrates all projinit operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs          fsops.FS
	hasher      hash.Hasher
	clock       clock.Clock
	configPaths config.Paths
	log         *logger.Logger
}

// New creates a new Engine with the given dependencies. A nil logger
// discards all diagnostics.
func New(
	fs fsops.FS,
	hasher hash.Hasher,
	clk clock.Clock,
	paths config.Paths,
	log *logger.Logger,
) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		fs:          fs,
		hasher:      hasher,
		clock:       clk,
		configPaths: paths,
		log:         log,
	}
}

// loadKeys reads and parses an env source. A missing source yields an
// empty KeyMap.
func (e *Engine) loadKeys(path string) (*envprofile.KeyMap, error) {
	data, err := e.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			e.log.Debug().Str("source", path).Msg("env source not found, using fallbacks")
			return envprofile.NewKeyMap(), nil
		}
		return nil, fmt.Errorf("failed to read env source %s: %w", path, err)
	}

	keys, dropped, err := envprofile.ParseWithReport(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	e.log.Debug().Str("source", path).Int("keys", keys.Len()).Msg("env source parsed")
	for _, line := range dropped {
		e.log.Debug().
			Str("source", path).
			Int("line", line.Number).
			Str("text", line.Text).
			Msg("dropped malformed env line")
	}
	return keys, nil
}

// synthesize builds the env document for a variant and auth mode from the
// source at path, returning the rendered bytes and the keys the source
// did not provide.
func (e *Engine) synthesize(variant project.Variant, auth project.AuthMode, path string) ([]byte, []string, error) {
	keys, err := e.loadKeys(path)
	if err != nil {
		return nil, nil, err
	}
	doc := envprofile.Synthesize(variant, auth, keys)
	return doc.Render(), envprofile.MissingKeys(variant, auth, keys), nil
}
