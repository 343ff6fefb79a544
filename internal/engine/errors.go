package engine

import "errors"

var (
	// ErrDestinationNotEmpty indicates the destination already has entries
	// and the request did not force initialization.
	ErrDestinationNotEmpty = errors.New("destination is not empty")

	// ErrMissingEnvKeys indicates a strict env generation found keys
	// absent from the source.
	ErrMissingEnvKeys = errors.New("env source is missing keys")

	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")
)
