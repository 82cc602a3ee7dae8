package conf

import (
	"os"
	"path/filepath"
)

const (
	configDirName  = ".rastro"
	configFileName = "config.toml"
)

// DefaultDir returns ~/.rastro.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", wrapError(err, "could not find home directory")
	}
	return filepath.Join(home, configDirName), nil
}

// DefaultPath returns ~/.rastro/config.toml.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
