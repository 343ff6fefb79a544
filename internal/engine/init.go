package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/projinit/internal/clock"
	"github.com/danieljhkim/projinit/internal/overlay"
	"github.com/danieljhkim/projinit/internal/project"
)

// Init composes a new project from the template layers selected by the
// request and writes the synthesized env document to EnvFileRelPath.
//
// A non-empty destination fails with ErrDestinationNotEmpty unless Force is
// set. A missing template layer fails with *overlay.MissingLayerError; files
// written by earlier layers stay in place.
func (e *Engine) Init(ctx context.Context, req *InitRequest) (*InitResult, error) {
	start := e.clock.Now()

	dest, err := resolveDestination(req.Name, req.CWD)
	if err != nil {
		return nil, err
	}
	spec := project.Spec{
		Destination: dest,
		Variant:     req.Variant,
		Auth:        req.Auth,
		Force:       req.Force,
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if !spec.Force {
		empty, err := e.fs.IsEmptyDir(spec.Destination)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect destination: %w", err)
		}
		if !empty {
			return nil, fmt.Errorf("%w: %s", ErrDestinationNotEmpty, spec.Destination)
		}
	}

	layers := overlay.BuildSequence(e.configPaths, spec.Variant, spec.Auth)
	e.log.Debug().
		Str("destination", spec.Destination).
		Strs("layers", layers.Names()).
		Bool("dry_run", req.DryRun).
		Msg("initializing project")
	composer := overlay.NewComposer(e.fs,
		overlay.WithLogger(e.log.Component("overlay")),
		overlay.WithDryRun(req.DryRun),
	)

	composed, err := composer.Compose(ctx, spec.Destination, layers)
	if err != nil {
		var missing *overlay.MissingLayerError
		if errors.As(err, &missing) {
			e.log.Info().
				Strs("applied", composed.Layers).
				Int("written", len(composed.Writes)).
				Msg("composition stopped at missing layer")
			return nil, err
		}
		return nil, fmt.Errorf("failed to compose project: %w", err)
	}

	content, missingKeys, err := e.synthesize(spec.Variant, spec.Auth, e.configPaths.EnvSource)
	if err != nil {
		return nil, err
	}
	envPath := filepath.Join(spec.Destination, filepath.FromSlash(EnvFileRelPath))
	if !req.DryRun {
		if err := e.fs.AtomicWrite(envPath, content, envFileMode); err != nil {
			return nil, fmt.Errorf("failed to write env file: %w", err)
		}
	}

	checksums := make(map[string]string, len(composed.Writes)+1)
	if !req.DryRun {
		for _, w := range composed.Writes {
			sum, err := e.hasher.HashFile(filepath.Join(spec.Destination, filepath.FromSlash(w.RelPath)))
			if err != nil {
				return nil, fmt.Errorf("failed to checksum %s: %w", w.RelPath, err)
			}
			checksums[w.RelPath] = sum
		}
	}
	checksums[EnvFileRelPath] = e.hasher.HashBytes(content)

	return &InitResult{
		Destination:    spec.Destination,
		Variant:        spec.Variant,
		Auth:           spec.Auth,
		Layers:         composed.Layers,
		Written:        composed.Paths(),
		Skipped:        composed.Skipped,
		Checksums:      checksums,
		EnvFile:        EnvFileRelPath,
		MissingEnvKeys: missingKeys,
		DryRun:         req.DryRun,
		Duration:       clock.Since(e.clock, start),
	}, nil
}
