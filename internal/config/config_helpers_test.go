package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"learnbench/internal/spec"
)

// validConfig returns a normalized config that passes validation.
func validConfig() spec.Config {
	cfg := spec.Config{
		Version: 1,
		Learners: spec.LearnersConfig{
			DFA: spec.LearnerConfig{Command: []string{"python3", "rpni.py"}},
			VPA: spec.LearnerConfig{Builtin: "reject-all"},
		},
		Models: []spec.ModelConfig{{Builtin: "anbn"}},
	}
	Normalize(&cfg)
	return cfg
}

// writeFile creates path under dir with content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// requireIssue fails unless err is a ValidationError mentioning field.
func requireIssue(t *testing.T, err error, field string) {
	t.Helper()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !validationErr.HasField(field) {
		t.Fatalf("expected issue for %s, got:\n%v", field, err)
	}
}
