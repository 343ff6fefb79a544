// Package overlay merges ordered template layers into one destination tree.
//
// Each layer is walked recursively and merged into the destination:
// directories are created or deepened, files are copied over whatever is
// already there. Later layers therefore win on path collisions, and running
// the same sequence twice yields the same bytes. Entries matching the skip
// rules are excluded together with their subtrees.
//
// Composition is not transactional. When a required layer is missing the
// composer stops with a *MissingLayerError and files written by earlier
// layers stay on disk; re-running after fixing the templates converges.
package overlay

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/projinit/internal/fsops"
	"github.com/danieljhkim/projinit/internal/logger"
)

// Write records one file copied into the destination.
type Write struct {
	// RelPath is the slash-separated path relative to the destination.
	RelPath string

	// Layer is the name of the layer that supplied the file.
	Layer string
}

// Result is the outcome of a composition.
type Result struct {
	// Destination is the root the layers were merged into.
	Destination string

	// Layers lists the names of the layers fully applied, in order.
	Layers []string

	// Writes lists every file written, in write order.
	Writes []Write

	// Skipped lists relative paths excluded by the skip rules.
	Skipped []string
}

// Paths returns the written relative paths in write order.
func (r *Result) Paths() []string {
	paths := make([]string, 0, len(r.Writes))
	for _, w := range r.Writes {
		paths = append(paths, w.RelPath)
	}
	return paths
}

// Composer merges layer sequences into a destination directory.
type Composer struct {
	fs     fsops.FS
	rules  SkipRules
	log    *logger.Logger
	dryRun bool
}

// Option configures a Composer.
type Option func(*Composer)

// WithSkipRules replaces DefaultSkipRules.
func WithSkipRules(rules SkipRules) Option {
	return func(c *Composer) {
		c.rules = rules
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDryRun makes Compose report what it would write without touching
// the destination.
func WithDryRun(dryRun bool) Option {
	return func(c *Composer) {
		c.dryRun = dryRun
	}
}

// NewComposer creates a Composer using DefaultSkipRules.
func NewComposer(fs fsops.FS, opts ...Option) *Composer {
	c := &Composer{
		fs:    fs,
		rules: DefaultSkipRules,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose merges layers into dest in order.
//
// The returned Result is never nil; on error it describes everything
// written before the failure.
func (c *Composer) Compose(ctx context.Context, dest string, layers Sequence) (*Result, error) {
	result := &Result{
		Destination: dest,
		Layers:      []string{},
		Writes:      []Write{},
		Skipped:     []string{},
	}
	if len(layers) == 0 {
		return result, ErrNoLayers
	}

	for _, layer := range layers {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		info, err := c.fs.Stat(layer.Source)
		if err != nil {
			exists, existsErr := c.fs.Exists(layer.Source)
			if existsErr != nil || exists {
				return result, fmt.Errorf("failed to stat %s layer: %w", layer.Name, err)
			}
			if layer.Required {
				return result, &MissingLayerError{Layer: layer.Name, Path: layer.Source}
			}
			c.log.Info().Str("layer", layer.Name).Str("source", layer.Source).Msg("optional layer not found, skipping")
			continue
		}
		if !info.IsDir() {
			return result, fmt.Errorf("%w: %s", ErrNotDirectory, layer.Source)
		}

		c.log.Info().Str("layer", layer.Name).Str("source", layer.Source).Msg("applying layer")
		if err := c.mergeDir(ctx, layer, layer.Source, dest, "", result); err != nil {
			return result, fmt.Errorf("failed to apply %s layer: %w", layer.Name, err)
		}
		result.Layers = append(result.Layers, layer.Name)
	}

	return result, nil
}

// mergeDir merges the directory src into dst. rel is the slash-separated
// path of src relative to the layer root.
func (c *Composer) mergeDir(ctx context.Context, layer Layer, src, dst, rel string, result *Result) error {
	if !c.dryRun {
		if err := c.fs.MkdirAll(dst, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	entries, err := c.fs.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", src, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		relPath := joinRel(rel, name)
		if rule, ok := c.rules.Match(name); ok {
			c.log.Debug().Str("path", relPath).Str("rule", rule.String()).Msg("skipped")
			result.Skipped = append(result.Skipped, relPath)
			continue
		}

		srcPath := filepath.Join(src, name)
		dstPath := filepath.Join(dst, name)

		// Stat follows symlinks so linked directories are merged like real ones.
		info, err := c.fs.Stat(srcPath)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", srcPath, err)
		}

		if info.IsDir() {
			if err := c.mergeDir(ctx, layer, srcPath, dstPath, relPath, result); err != nil {
				return err
			}
			continue
		}

		if !c.dryRun {
			if err := c.fs.CopyFile(srcPath, dstPath); err != nil {
				return fmt.Errorf("failed to copy %s: %w", relPath, err)
			}
		}
		c.log.Debug().Str("layer", layer.Name).Str("path", relPath).Msg("created")
		result.Writes = append(result.Writes, Write{RelPath: relPath, Layer: layer.Name})
	}

	return nil
}

func joinRel(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
