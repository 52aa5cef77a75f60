// Package fileops provides filesystem helpers shared across the server:
// root resolution and traversal-safe reads beneath a fixed directory.
package fileops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrTraversal is returned when a requested path escapes its root.
var ErrTraversal = errors.New("path escapes the documentation root")

// ResolveRoot expands a directory path to an absolute, symlink-resolved
// form and verifies it exists and is a directory.
func ResolveRoot(path string) (string, error) {
	if path == "" {
		return "", errors.New("root path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving root %q: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving root %q: %w", path, err)
	}
	fi, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("resolving root %q: %w", path, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("root %q is not a directory", path)
	}
	return resolved, nil
}

// ReadFileUnder reads root/rel after confirming the resolved target still
// lives beneath root. Symlinks pointing outside the root are rejected with
// ErrTraversal rather than followed.
func ReadFileUnder(root, rel string) ([]byte, error) {
	if filepath.IsAbs(rel) {
		return nil, ErrTraversal
	}
	joined := filepath.Join(root, filepath.FromSlash(rel))

	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return nil, err
	}
	if !within(root, resolved) {
		return nil, ErrTraversal
	}
	return os.ReadFile(resolved)
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}
