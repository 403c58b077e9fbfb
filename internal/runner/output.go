package runner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPaths describes filesystem locations for run outputs.
type OutputPaths struct {
	Root  string
	RunID string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(root, runID string) (OutputPaths, error) {
	if strings.TrimSpace(root) == "" {
		return OutputPaths{}, fmt.Errorf("output root is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	if strings.ContainsAny(runID, `/\`) {
		return OutputPaths{}, fmt.Errorf("run ID %q contains a path separator", runID)
	}
	return OutputPaths{Root: root, RunID: runID}, nil
}

// RunDir returns the directory for a specific run.
func (o OutputPaths) RunDir() string {
	return filepath.Join(o.Root, o.RunID)
}

// ResultsPath returns the path to results.json.
func (o OutputPaths) ResultsPath() string {
	return filepath.Join(o.RunDir(), "results.json")
}

// ReportPath returns the path to the HTML report.
func (o OutputPaths) ReportPath() string {
	return filepath.Join(o.RunDir(), "report.html")
}

// LinesPath returns the path to the plain summary lines.
func (o OutputPaths) LinesPath() string {
	return filepath.Join(o.RunDir(), "summary.txt")
}
