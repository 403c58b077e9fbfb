package runner

import (
	"context"
	"fmt"
	"strings"

	"learnbench/internal/trace"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -f run_report.templ

// renderRunReportHTML renders the single-run report template into a string.
func renderRunReportHTML(ctx context.Context, results Results) (string, error) {
	var builder strings.Builder
	if err := RunReport(results).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

func experimentCounts(s RunSummary) string {
	return fmt.Sprintf("%d experiments: %d passed, %d failed, %d skipped",
		s.ExperimentsTotal, s.ExperimentsPassed, s.ExperimentsFailed, s.ExperimentsSkipped)
}

func score(value float64) string {
	return fmt.Sprintf("%.4f", value)
}

func balance(b trace.Balance) string {
	return fmt.Sprintf("%d/%d", b.Positive, b.Negative)
}

// experimentStatus appends the failure reason, when there is one.
func experimentStatus(experiment ExperimentResult) string {
	if experiment.FailureReason == nil {
		return experiment.Status
	}
	return experiment.Status + ": " + *experiment.FailureReason
}
