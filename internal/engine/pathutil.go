package engine

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolveDestination resolves a user-provided project name (absolute,
// relative, or ".") against cwd to a clean absolute path.
func resolveDestination(name, cwd string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "."
	}

	var absPath string
	if filepath.IsAbs(name) {
		absPath = name
	} else {
		if cwd == "" {
			return "", fmt.Errorf("%w: relative destination %q needs a working directory", ErrValidation, name)
		}
		absPath = filepath.Join(cwd, name)
	}
	return filepath.Clean(absPath), nil
}

// resolveOptional resolves path against cwd, keeping an empty path empty.
func resolveOptional(path, cwd string) (string, error) {
	if path == "" {
		return "", nil
	}
	return resolveDestination(path, cwd)
}
