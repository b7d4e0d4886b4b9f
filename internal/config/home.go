package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultHomeDir is the per-directory home used when ARCHIVETIDY_HOME is unset
	DefaultHomeDir = ".archivetidy"

	// ConfigFileName is the config file looked up inside the home directory
	ConfigFileName = "config.yaml"

	// HomeEnv overrides the home directory
	HomeEnv = "ARCHIVETIDY_HOME"
)

// GetHome returns the archivetidy home directory
// Priority order:
//  1. ARCHIVETIDY_HOME environment variable (if set)
//  2. .archivetidy in the current working directory
//
// The directory is not created; callers that write into it create what they need.
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, DefaultHomeDir), nil
}

// DefaultConfigPath returns the config file path inside the home directory
func DefaultConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName), nil
}

// Load resolves the config file and loads it. An explicit path wins;
// otherwise the file in the home directory is used. A missing file yields
// the defaults, with the log directory placed under the home directory.
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadConfig(explicitPath)
	}

	home, err := GetHome()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(filepath.Join(home, ConfigFileName))
	if err != nil {
		return nil, err
	}
	if cfg.LogDir == DefaultConfig().LogDir {
		cfg.LogDir = filepath.Join(home, "logs")
	}
	return cfg, nil
}
