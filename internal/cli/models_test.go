package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"learnbench/internal/automaton"
)

func TestModelsListsCatalogue(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run([]string{"models"}, &out, &errOut); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(automaton.CatalogueNames())+1 {
		t.Fatalf("expected header plus %d rows, got %d", len(automaton.CatalogueNames()), len(lines))
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(out.String(), "anbn") {
		t.Fatalf("unexpected listing:\n%s", out.String())
	}
}

func TestModelsExportRoundTrips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	var out, errOut bytes.Buffer
	if code := Run([]string{"models", "--export", dir}, &out, &errOut); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	for _, name := range automaton.CatalogueNames() {
		data, err := os.ReadFile(filepath.Join(dir, name+".json"))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		model, err := automaton.Decode(data)
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if model.Size() == 0 {
			t.Fatalf("model %s has no states", name)
		}
	}
}

// TestExportedModelLoadsAsPathModel verifies exported files are accepted as models[].path.
func TestExportedModelLoadsAsPathModel(t *testing.T) {
	root := t.TempDir()
	var out, errOut bytes.Buffer
	if code := Run([]string{"models", "--export", filepath.Join(root, "models")}, &out, &errOut); code != ExitOK {
		t.Fatalf("export failed: %s", errOut.String())
	}
	models, err := buildModels(specModels(
		modelEntry{path: "models/anbn.json"},
		modelEntry{path: "models/xml_tags.json", name: "xml"},
	), root)
	if err != nil {
		t.Fatalf("build models: %v", err)
	}
	if len(models) != 2 || models[0].Name != "anbn" || models[1].Name != "xml" {
		t.Fatalf("unexpected models: %+v", models)
	}
}
