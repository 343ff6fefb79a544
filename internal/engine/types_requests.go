package engine

import "github.com/danieljhkim/projinit/internal/project"

// InitRequest represents a request to initialize a project.
type InitRequest struct {
	// CWD is the directory relative names resolve against
	CWD string

	// Name is the project directory; empty or "." selects CWD
	Name string

	// Variant is the backend variant
	Variant project.Variant

	// Auth is the authentication mode (AuthNone when absent)
	Auth project.AuthMode

	// Force skips the non-empty destination check
	Force bool

	// DryRun computes the written paths without touching the filesystem
	DryRun bool
}

// EnvRequest represents a request to synthesize an environment document.
type EnvRequest struct {
	// CWD is the directory relative paths resolve against
	CWD string

	// Variant is the backend variant
	Variant project.Variant

	// Auth is the authentication mode (AuthNone when absent)
	Auth project.AuthMode

	// Source overrides the configured env source
	Source string

	// Dest is the output file; empty returns the document without writing
	Dest string

	// Strict fails with ErrMissingEnvKeys instead of falling back when the
	// source lacks a key the document reads
	Strict bool
}
