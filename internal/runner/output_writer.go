package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteRunOutputs writes results.json, summary.txt and report.html under outputDir/<run id>.
func WriteRunOutputs(ctx context.Context, results Results, outputDir string) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, results.RunID)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := writeJSON(paths.ResultsPath(), results); err != nil {
		return OutputPaths{}, err
	}
	if err := writeFile(paths.LinesPath(), SummaryLines(results)); err != nil {
		return OutputPaths{}, err
	}
	html, err := renderRunReportHTML(ctx, results)
	if err != nil {
		return OutputPaths{}, fmt.Errorf("render report: %w", err)
	}
	if err := writeFile(paths.ReportPath(), html); err != nil {
		return OutputPaths{}, err
	}
	return paths, nil
}

// SummaryLines rebuilds the per-model lines from stored results. Skipped experiments
// have no line. Failures get a "failed" line only under FailContinue, matching what Run
// prints; the one exception is a failure caused by cancellation, which Run never prints.
func SummaryLines(results Results) string {
	printsFailures := results.Settings.OnFailure == FailContinue
	var b strings.Builder
	for _, experiment := range results.Experiments {
		switch {
		case experiment.Comparison != nil:
			b.WriteString(FormatLine(experiment.Index, *experiment.Comparison))
		case printsFailures && experiment.Status == StatusFail && experiment.FailureReason != nil:
			b.WriteString(fmt.Sprintf("GT %d: failed: %s", experiment.Index, *experiment.FailureReason))
		default:
			continue
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// writeJSON writes a Results payload as pretty JSON.
func writeJSON(path string, results Results) error {
	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return writeFile(path, string(payload)+"\n")
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
