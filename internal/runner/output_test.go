package runner

import (
	"path/filepath"
	"testing"
)

func TestOutputPaths(t *testing.T) {
	root := t.TempDir()
	paths, err := NewOutputPaths(root, "20240102T030405Z-deadbeef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectedRunDir := filepath.Join(root, "20240102T030405Z-deadbeef")
	if paths.RunDir() != expectedRunDir {
		t.Fatalf("unexpected run dir: %q", paths.RunDir())
	}
	if paths.ResultsPath() != filepath.Join(expectedRunDir, "results.json") {
		t.Fatalf("unexpected results path: %q", paths.ResultsPath())
	}
	if paths.ReportPath() != filepath.Join(expectedRunDir, "report.html") {
		t.Fatalf("unexpected report path: %q", paths.ReportPath())
	}
	if paths.LinesPath() != filepath.Join(expectedRunDir, "summary.txt") {
		t.Fatalf("unexpected lines path: %q", paths.LinesPath())
	}
}

func TestOutputPathsErrors(t *testing.T) {
	cases := []struct {
		name  string
		root  string
		runID string
	}{
		{name: "missing-root", root: "", runID: "id"},
		{name: "missing-run", root: "out", runID: ""},
		{name: "separator", root: "out", runID: "a/b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewOutputPaths(tc.root, tc.runID); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
