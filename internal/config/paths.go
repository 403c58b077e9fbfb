package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config path constants used by the CLI and loaders.
const (
	ConfigDirName    = ".learnbench"
	ConfigFileName   = "config.yml"
	DefaultOutputDir = ".learnbench/results"
)

// ConfigDir returns the .learnbench directory under root.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// ConfigPath returns the full config file path under root.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), ConfigFileName)
}

// BaseDirFromConfigPath returns the directory relative config paths resolve against:
// the parent of .learnbench, or the file's own directory for configs stored elsewhere.
func BaseDirFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// FindConfigPath searches upward from startDir (default: working directory) for .learnbench/config.yml.
func FindConfigPath(startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for {
		configPath := ConfigPath(dir)
		info, err := os.Stat(configPath)
		switch {
		case err == nil && info.IsDir():
			return "", fmt.Errorf("config path %q is a directory", configPath)
		case err == nil:
			return configPath, nil
		case !os.IsNotExist(err):
			return "", fmt.Errorf("stat config path %q: %w", configPath, err)
		}
		if dirInfo, dirErr := os.Stat(ConfigDir(dir)); dirErr == nil && dirInfo.IsDir() {
			return "", fmt.Errorf("found %q but %s is missing", ConfigDir(dir), ConfigFileName)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in %s or parent directories", filepath.Join(ConfigDirName, ConfigFileName), dir)
		}
		dir = parent
	}
}
