package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"learnbench/internal/runner"
)

// RefLatest resolves to the most recent run under an output directory.
const RefLatest = "latest"

// ErrNoRuns indicates an output directory without stored runs.
var ErrNoRuns = errors.New("no runs found")

func LoadResults(path string) (runner.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runner.Results{}, err
	}
	var results runner.Results
	if err := json.Unmarshal(data, &results); err != nil {
		return runner.Results{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return results, nil
}

// ResolveRun loads a run by id, or the newest one when ref is "latest".
func ResolveRun(outputDir, ref string) (runner.Results, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return runner.Results{}, "", fmt.Errorf("run ref is required")
	}
	if ref == RefLatest {
		ids, err := ListRuns(outputDir)
		if err != nil {
			return runner.Results{}, "", err
		}
		ref = ids[len(ids)-1]
	}
	paths, err := runner.NewOutputPaths(outputDir, ref)
	if err != nil {
		return runner.Results{}, "", err
	}
	if _, err := os.Stat(paths.ResultsPath()); err != nil {
		return runner.Results{}, "", fmt.Errorf("run %s not found in %s", ref, outputDir)
	}
	results, err := LoadResults(paths.ResultsPath())
	return results, paths.RunDir(), err
}

// ListRuns returns the ids of runs holding a results.json, oldest first.
// Run ids start with a UTC timestamp so lexical order is chronological.
func ListRuns(outputDir string) ([]string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrNoRuns, outputDir)
		}
		return nil, err
	}
	runIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(outputDir, entry.Name(), "results.json")); err == nil {
			runIDs = append(runIDs, entry.Name())
		}
	}
	if len(runIDs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRuns, outputDir)
	}
	sort.Strings(runIDs)
	return runIDs, nil
}
