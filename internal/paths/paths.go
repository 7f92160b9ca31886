package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "awsbuild"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the directory for user configuration.
//
//	Linux:   $XDG_CONFIG_HOME/awsbuild or ~/.config/awsbuild
//	macOS:   ~/Library/Application Support/awsbuild
func Config() string {
	return filepath.Join(xdg.ConfigHome, toolName)
}

// Default path to the configuration file holding build defaults.
//
//	Linux:   $XDG_CONFIG_HOME/awsbuild/config.yaml
//	macOS:   ~/Library/Application Support/awsbuild/config.yaml
func ConfigFile() string {
	return filepath.Join(Config(), "config.yaml")
}
