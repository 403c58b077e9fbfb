package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const scaffoldTemplate = `version: 1
output:
  dir: %q
run:
  seed: 1
  workers: 1
  on_failure: abort
  split_ratio: 0.5
  split_boundary: inclusive
generation:
  strategy: random
  count: 10000
  max_length: 50
learners:
  # Replace the baselines with learner programs, for example:
  #   command: ["python3", "learners/rpni.py"]
  dfa:
    label: accept-all
    builtin: accept-all
  vpa:
    label: reject-all
    builtin: reject-all
models:
  - builtin: all
`

// ScaffoldConfig renders the starter config with the given output directory.
func ScaffoldConfig(outputDir string) string {
	if strings.TrimSpace(outputDir) == "" {
		outputDir = DefaultOutputDir
	}
	return fmt.Sprintf(scaffoldTemplate, outputDir)
}

// Scaffold writes a starter config to configPath. Existing files are never overwritten.
func Scaffold(configPath, outputDir string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(ScaffoldConfig(outputDir)), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
