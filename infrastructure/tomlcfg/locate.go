package tomlcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrConfigNotFound reports a missing policy file near the project root.
var ErrConfigNotFound = errors.New("configuration file not found")

// rootMarkers identify a project root while walking up the directory tree.
var rootMarkers = []string{ConfigFilename, "pyproject.toml", "setup.py", "setup.cfg", ".git"}

// FindProjectRoot walks up from start (the working directory when empty)
// until a directory containing a root marker is found. When no marker
// exists, start itself is returned.
func FindProjectRoot(start string) string {
	if start == "" {
		if cwd, err := os.Getwd(); err == nil {
			start = cwd
		} else {
			start = "."
		}
	}
	current := start
	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return start
		}
		current = parent
	}
}

// Locate returns the path of the policy file near the project root, or an
// error wrapping ErrConfigNotFound with a hint to run init.
func Locate(start string) (string, error) {
	root := FindProjectRoot(start)
	candidate := filepath.Join(root, ConfigFilename)
	info, err := os.Stat(candidate)
	if err == nil && info.Mode().IsRegular() {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q not found near %s, run `licensedeny init` to create a template",
		ErrConfigNotFound, ConfigFilename, root)
}
