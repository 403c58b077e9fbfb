package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"learnbench/internal/runner"
	"learnbench/internal/vcs"
)

const baselineConfig = `version: 1
output:
  dir: out
run:
  seed: 11
  on_failure: continue
generation:
  count: 40
  max_length: 6
learners:
  dfa: { builtin: accept-all }
  vpa: { builtin: reject-all }
models:
  - builtin: anbn
  - builtin: dyck_two
    name: dyck
`

// writeConfig writes a .learnbench/config.yml under a fresh root and returns both paths.
func writeConfig(t *testing.T, body string) (root, configPath string) {
	t.Helper()
	root = t.TempDir()
	configPath = filepath.Join(root, ".learnbench", "config.yml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return root, configPath
}

// stubRunSeams fixes the run id and hides the git workspace for the test's duration.
func stubRunSeams(t *testing.T, runID string) {
	t.Helper()
	originalDeps := runDependencies
	originalInspect := inspectWorkspace
	runDependencies = func() runner.RunDependencies {
		return runner.RunDependencies{RunID: func() (string, error) { return runID, nil }}
	}
	inspectWorkspace = func(ctx context.Context, dir string) (vcs.Provenance, error) {
		return vcs.Provenance{}, vcs.ErrNotRepository
	}
	t.Cleanup(func() {
		runDependencies = originalDeps
		inspectWorkspace = originalInspect
	})
}
