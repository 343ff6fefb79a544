package engine

import (
	"time"

	"github.com/danieljhkim/projinit/internal/project"
)

// InitResult represents the result of initializing a project.
type InitResult struct {
	// Destination is the absolute project root
	Destination string `json:"destination"`

	// Variant is the backend variant used
	Variant project.Variant `json:"variant"`

	// Auth is the authentication mode used
	Auth project.AuthMode `json:"auth"`

	// Layers lists the layer names applied, in order
	Layers []string `json:"layers"`

	// Written lists the destination-relative paths copied, in write order
	Written []string `json:"written"`

	// Skipped lists template entries excluded by the skip rules
	Skipped []string `json:"skipped,omitempty"`

	// Checksums maps every written path, including the env file, to its
	// SHA-256 digest. Empty on dry runs except for the env file.
	Checksums map[string]string `json:"checksums"`

	// EnvFile is the destination-relative path of the env document
	EnvFile string `json:"envFile"`

	// MissingEnvKeys lists source keys the env source did not define
	MissingEnvKeys []string `json:"missingEnvKeys,omitempty"`

	// DryRun reports that nothing was written
	DryRun bool `json:"dryRun"`

	// Duration is the wall time of the run
	Duration time.Duration `json:"duration"`
}

// EnvResult represents a synthesized environment document.
type EnvResult struct {
	// Source is the env source that was read
	Source string `json:"source"`

	// Path is the file written, empty when the document was not written
	Path string `json:"path,omitempty"`

	// Content is the rendered document
	Content string `json:"content"`

	// MissingKeys lists source keys the env source did not define
	MissingKeys []string `json:"missingKeys,omitempty"`
}
