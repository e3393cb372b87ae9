// Package appdir provides constants and helpers for the .simplydone directory.
package appdir

import (
	"os"
	"path/filepath"
)

const (
	// Name is the application name used for config directories and files.
	Name = "simplydone"

	// Dir is the name of the state directory under the user's home.
	Dir = ".simplydone"

	// ConfigFile is the config file name.
	ConfigFile = "simplydone.toml"

	// LogsDir is the log directory name inside Dir.
	LogsDir = "logs"
)

// Home returns ~/.simplydone, or .simplydone when the home directory is
// unknown.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return Dir
	}
	return filepath.Join(home, Dir)
}

// DirPath returns the .simplydone directory within base.
func DirPath(base string) string {
	if base == "." || base == "" {
		return Dir
	}
	return filepath.Join(base, Dir)
}

// ConfigPath returns the config file path inside the state directory of base.
func ConfigPath(base string) string {
	return filepath.Join(DirPath(base), ConfigFile)
}

// LogsPath returns the log directory inside the state directory of base.
func LogsPath(base string) string {
	return filepath.Join(DirPath(base), LogsDir)
}
