package overlay

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingLayer indicates a required layer source does not exist.
	ErrMissingLayer = errors.New("template layer not found")

	// ErrNoLayers indicates Compose was called with an empty sequence.
	ErrNoLayers = errors.New("no layers to compose")

	// ErrNotDirectory indicates a layer source exists but is not a directory.
	ErrNotDirectory = errors.New("layer source is not a directory")
)

// MissingLayerError reports the required layer whose source directory is absent.
// Layers applied before it remain on disk.
type MissingLayerError struct {
	// Layer is the name of the missing layer.
	Layer string

	// Path is the source directory that was looked up.
	Path string
}

func (e *MissingLayerError) Error() string {
	return fmt.Sprintf("%s templates directory not found at %s", e.Layer, e.Path)
}

// Is makes errors.Is(err, ErrMissingLayer) hold for MissingLayerError values.
func (e *MissingLayerError) Is(target error) bool {
	return target == ErrMissingLayer
}
