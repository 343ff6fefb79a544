package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/danieljhkim/projinit/internal/project"
)

// GenerateEnv synthesizes the env document for a variant and auth mode.
// When Dest is set the document is also written there, replacing any
// existing file. Strict requests fail before writing when the source
// lacks any key the document reads.
func (e *Engine) GenerateEnv(ctx context.Context, req *EnvRequest) (*EnvResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spec := project.Spec{Destination: ".", Variant: req.Variant, Auth: req.Auth}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	source, err := resolveOptional(req.Source, req.CWD)
	if err != nil {
		return nil, err
	}
	if source == "" {
		source = e.configPaths.EnvSource
	}
	dest, err := resolveOptional(req.Dest, req.CWD)
	if err != nil {
		return nil, err
	}

	content, missing, err := e.synthesize(req.Variant, req.Auth, source)
	if err != nil {
		return nil, err
	}
	if req.Strict && len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s: %s", ErrMissingEnvKeys, source, strings.Join(missing, ", "))
	}

	if dest != "" {
		if err := e.fs.AtomicWrite(dest, content, envFileMode); err != nil {
			return nil, fmt.Errorf("failed to write env file: %w", err)
		}
	}

	return &EnvResult{
		Source:      source,
		Path:        dest,
		Content:     string(content),
		MissingKeys: missing,
	}, nil
}
