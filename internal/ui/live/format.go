package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// formatIndex formats a ground truth position.
func formatIndex(index int) string {
	return pad2(index + 1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatName truncates model names for display.
func formatName(name string) string {
	normalized := strings.Join(strings.Fields(name), " ")
	const limit = 40
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatStatus renders a status string for a row.
func formatStatus(row ExperimentRow, noColor bool) string {
	text := string(row.Status)
	if noColor {
		return text
	}
	return statusStyle(row.Status).Render(text)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row ExperimentRow, now time.Time) string {
	if row.Duration > 0 {
		return formatDuration(row.Duration)
	}
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return formatDuration(row.FinishedAt.Sub(row.StartedAt))
	}
	if !row.StartedAt.IsZero() {
		return formatDuration(now.Sub(row.StartedAt))
	}
	return ""
}

func formatBalance(row ExperimentRow, positive, negative int) string {
	if row.Status != StatusPassed {
		return ""
	}
	return fmtInt(positive) + "/" + fmtInt(negative)
}

func formatLearner(row ExperimentRow, cell LearnerCell) string {
	if row.Status != StatusPassed {
		return ""
	}
	return fmtInt(cell.Size) + " / " + strconv.FormatFloat(cell.F1, 'f', 3, 64)
}

// statusStyle selects a style for a given status.
func statusStyle(status ExperimentStatus) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case StatusPassed:
		color = lipgloss.Color("42")
	case StatusFailed:
		color = lipgloss.Color("196")
	case StatusRunning:
		color = lipgloss.Color("33")
	case StatusQueued:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}
