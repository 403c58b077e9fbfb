package spec

import (
	"errors"
	"reflect"
	"testing"
)

// TestParseConfigValid verifies a full config parses into every section.
func TestParseConfigValid(t *testing.T) {
	data := []byte(`version: 1
output:
  dir: "./results"
  duckdb: "./results/runs.duckdb"
  csv: "./results/runs.csv"
run:
  seed: 7
  workers: 2
  on_failure: continue
  split_ratio: 0.5
  split_boundary: within
  sort_by_length: true
generation:
  strategy: exploration
  count: 100
  min_length: 2
  max_length: 12
  walks: 500
  walk_min_length: 3
  walk_max_length: 9
learners:
  dfa:
    label: RPNI
    command: ["python3", "learners/rpni.py"]
    timeout_seconds: 30
  vpa:
    label: PAPNI
    builtin: reject-all
models:
  - builtin: all
  - path: models/custom.json
    name: custom
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if cfg.Run.Seed != 7 || cfg.Run.Workers != 2 || cfg.Run.OnFailure != "continue" || !cfg.Run.SortByLength {
		t.Fatalf("unexpected run config: %+v", cfg.Run)
	}
	if cfg.Generation.Strategy != "exploration" || cfg.Generation.Walks != 500 {
		t.Fatalf("unexpected generation config: %+v", cfg.Generation)
	}
	if !reflect.DeepEqual(cfg.Learners.DFA.Command, []string{"python3", "learners/rpni.py"}) || cfg.Learners.DFA.TimeoutSeconds != 30 {
		t.Fatalf("unexpected dfa learner: %+v", cfg.Learners.DFA)
	}
	if cfg.Learners.VPA.Builtin != "reject-all" {
		t.Fatalf("unexpected vpa learner: %+v", cfg.Learners.VPA)
	}
	if len(cfg.Models) != 2 || cfg.Models[0].Builtin != "all" || cfg.Models[1].Name != "custom" {
		t.Fatalf("unexpected models: %+v", cfg.Models)
	}
}

// TestParseConfigUnknownField verifies unknown fields are rejected.
func TestParseConfigUnknownField(t *testing.T) {
	data := []byte(`version: 1
run:
  seed: 1
  retries: 3
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}

// TestParseConfigRejectsMultipleDocs verifies multiple YAML docs are rejected.
func TestParseConfigRejectsMultipleDocs(t *testing.T) {
	data := []byte("version: 1\n---\nversion: 1\n")
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for multiple documents")
	}
}

// TestParseConfigEmpty verifies empty input is reported distinctly.
func TestParseConfigEmpty(t *testing.T) {
	for _, data := range []string{"", "  \n", "\t\n\n"} {
		if _, err := ParseConfig([]byte(data)); !errors.Is(err, ErrEmptyConfig) {
			t.Fatalf("expected ErrEmptyConfig for %q, got %v", data, err)
		}
	}
}
