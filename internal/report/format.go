package report

import (
	"fmt"
	"time"
)

// formatPassRate returns a percentage string for report output.
func formatPassRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate*100)
}

func formatScore(value float64) string {
	return fmt.Sprintf("%.4f", value)
}

// formatDelta signs the VPA minus DFA difference.
func formatDelta(value float64) string {
	return fmt.Sprintf("%+.4f", value)
}

// formatStarted prints a run start in UTC, or nothing for runs without one.
func formatStarted(started time.Time) string {
	if started.IsZero() {
		return ""
	}
	return started.UTC().Format("2006-01-02 15:04:05")
}
