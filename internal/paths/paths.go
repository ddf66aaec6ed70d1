// Package paths resolves the configuration directory and the lineage file
// location for the coven CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Names used under the configuration directory.
const (
	AppDirName         = "coven"
	ConfigFileName     = "config.yaml"
	DefaultLineageName = "lineage.yaml"
)

// Environment variable names for location overrides.
const (
	EnvConfigDir   = "COVEN_CONFIG_DIR"
	EnvLineageFile = "COVEN_LINEAGE_FILE"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/coven (fallback ~/.config/coven)
// macOS:   ~/Library/Application Support/coven
// Windows: %APPDATA%/coven
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppDirName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > COVEN_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveLineageFile returns the lineage file following the precedence chain:
// flag > config.yaml lineage_file > COVEN_LINEAGE_FILE env >
// <configDir>/lineage.yaml.
//
// A relative config.yaml value is taken relative to configDir; relative flag
// and env values are taken relative to the working directory.
func ResolveLineageFile(flag, configYAMLValue, configDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		if filepath.IsAbs(configYAMLValue) {
			return filepath.Clean(configYAMLValue), nil
		}
		return filepath.Abs(filepath.Join(configDir, configYAMLValue))
	}
	if env := os.Getenv(EnvLineageFile); env != "" {
		return filepath.Abs(env)
	}
	return filepath.Join(configDir, DefaultLineageName), nil
}
