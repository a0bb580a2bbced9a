package paths

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	appName = "bcigen"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Default directory for generated build packages.
//
//	Linux:   $XDG_DATA_HOME/bcigen/output or ~/.local/share/bcigen/output
//	macOS:   ~/Library/Application Support/bcigen/output
func Output() string {
	return filepath.Join(xdg.DataHome, appName, "output")
}

// Default path to the user definition file.
//
//	Linux:   $XDG_CONFIG_HOME/bcigen/images.yaml or ~/.config/bcigen/images.yaml
//	macOS:   ~/Library/Application Support/bcigen/images.yaml
func Definitions() string {
	return filepath.Join(xdg.ConfigHome, appName, "images.yaml")
}

// Returns the user definition file if it exists.
func UserDefinitions() (string, bool) {
	path := Definitions()
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return path, true
		}
		return "", false
	}
	return path, true
}
