package consts

import (
	"os"
	"path/filepath"
)

// Constants for configuration paths and defaults
const (
	DefaultDirName    = ".ospack"
	StateFileName     = "state.json"
	ConfigName        = "ospack" // ospack.yaml
	OverridesFileName = "overrides.yaml"
	EnvFileName       = ".env"
	EnvPrefix         = "OSPACK"
)

// GetOspackDir returns ~/.ospack, or .ospack when the home directory is
// unknown.
func GetOspackDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDirName
	}
	return filepath.Join(home, DefaultDirName)
}

// GetStateFilePath returns the path to the state file
func GetStateFilePath() string {
	return filepath.Join(GetOspackDir(), StateFileName)
}

// GetOverridesFilePath returns the default path of the user overrides file
func GetOverridesFilePath() string {
	return filepath.Join(GetOspackDir(), OverridesFileName)
}
