package report

import (
	"context"

	"learnbench/internal/runner"
)

// BuildReportHTML renders a comparison page across runs.
func BuildReportHTML(runs []runner.Results) string {
	html, err := renderReportHTML(context.Background(), runs)
	if err != nil {
		return ""
	}
	return html
}
