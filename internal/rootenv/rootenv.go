// Package rootenv resolves the jar search root from a named environment
// variable.
package rootenv

import (
	"fmt"
	"os"
	"path/filepath"

	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Resolve reads the variable named name and returns its value as an
// absolute, existing directory. An unset or empty variable is
// ErrEnvironmentNotSet; a value that is not a readable directory is
// ErrFilesystemAccess.
func Resolve(name string, lookup LookupFunc) (string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if name == "" {
		return "", fmt.Errorf("%w: no search root variable named", fserrors.ErrInvalidArgs)
	}

	value, ok := lookup(name)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s is not set", fserrors.ErrEnvironmentNotSet, name)
	}

	root, err := filepath.Abs(expandHome(value, lookup))
	if err != nil {
		return "", fmt.Errorf("%w: resolving %s=%s: %v", fserrors.ErrFilesystemAccess, name, value, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("%w: %s=%s: %v", fserrors.ErrFilesystemAccess, name, value, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s=%s is not a directory", fserrors.ErrFilesystemAccess, name, value)
	}

	return root, nil
}

// expandHome replaces a leading "~" with the HOME directory.
func expandHome(path string, lookup LookupFunc) string {
	if path != "~" && !hasHomePrefix(path) {
		return path
	}
	home, ok := lookup("HOME")
	if !ok || home == "" {
		return path
	}
	return filepath.Join(home, path[1:])
}

func hasHomePrefix(path string) bool {
	return len(path) > 1 && path[0] == '~' && os.IsPathSeparator(path[1])
}
