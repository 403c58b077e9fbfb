package report

import (
	"context"
	"strings"

	"learnbench/internal/runner"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -f report.templ

// renderReportHTML renders the report template into a string.
func renderReportHTML(ctx context.Context, runs []runner.Results) (string, error) {
	var builder strings.Builder
	if err := ReportPage(runs).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
