// Package config resolves where arch-mcp-server finds its mapping file and
// carries the settings assembled from CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppName is used for XDG paths and server identification.
	AppName = "arch-mcp-server"

	// MappingFileName is the default name of the classification mapping file.
	MappingFileName = "arch-mcp.yaml"
)

// Settings holds everything the server needs to start, assembled from CLI
// flags before any component is constructed.
type Settings struct {
	DocsRoot    string // documentation root, required
	MappingPath string // explicit mapping file path, optional
	HTTPAddr    string // listen address for HTTP transport, empty means stdio
	LogLevel    string // debug, info, warn, error
}

// ResolveMappingPath decides which mapping file to load, in order of
// preference: the explicit path, then <docsRoot>/arch-mcp.yaml, then the
// XDG config directory. The returned path is guaranteed to exist.
func ResolveMappingPath(docsRoot, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("mapping file %q: %w", explicit, err)
		}
		return explicit, nil
	}

	inRoot := filepath.Join(docsRoot, MappingFileName)
	if _, err := os.Stat(inRoot); err == nil {
		return inRoot, nil
	}

	inXDG := filepath.Join(xdg.ConfigHome, AppName, MappingFileName)
	if _, err := os.Stat(inXDG); err == nil {
		return inXDG, nil
	}

	return "", fmt.Errorf("no mapping file found: tried %s and %s", inRoot, inXDG)
}
