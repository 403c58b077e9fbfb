package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"learnbench/internal/config"
)

func withInitInput(t *testing.T, input string) {
	t.Helper()
	original := initInput
	initInput = strings.NewReader(input)
	t.Cleanup(func() { initInput = original })
}

// TestInitWritesLoadableConfig verifies init scaffolds a config that loads and validates.
func TestInitWritesLoadableConfig(t *testing.T) {
	withInitInput(t, "y\nresults\nn\n")
	configPath := filepath.Join(t.TempDir(), ".learnbench", "config.yml")

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--config", configPath}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	if !strings.Contains(out.String(), "Wrote "+configPath) {
		t.Fatalf("unexpected output: %q", out.String())
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
	if cfg.Output.Dir != "results" {
		t.Fatalf("expected output dir results, got %q", cfg.Output.Dir)
	}

	out.Reset()
	errOut.Reset()
	if code := Run([]string{"validate", "--config", configPath}, &out, &errOut); code != ExitOK {
		t.Fatalf("validate scaffold: exit %d (%s)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "Config OK (10 ground truths)") {
		t.Fatalf("unexpected validate output: %q", out.String())
	}
}

// TestInitRefusesExistingConfig verifies init never overwrites a config.
func TestInitRefusesExistingConfig(t *testing.T) {
	_, configPath := writeConfig(t, baselineConfig)
	withInitInput(t, "y\n\nn\n")

	var out, errOut bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &out, &errOut); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "already exists") {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}
	data, err := os.ReadFile(configPath)
	if err != nil || string(data) != baselineConfig {
		t.Fatalf("config was modified: %v", err)
	}
}

// TestInitCancelled verifies a declined prompt leaves no file behind.
func TestInitCancelled(t *testing.T) {
	withInitInput(t, "n\n")
	configPath := filepath.Join(t.TempDir(), ".learnbench", "config.yml")

	var out, errOut bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &out, &errOut); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "Init cancelled.") {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Fatalf("expected no config file, got %v", err)
	}
}
