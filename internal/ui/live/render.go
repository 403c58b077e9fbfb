package live

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if state.Total > 0 {
		line += " | Ground truths: " + fmtInt(state.Total)
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Queued: " + fmtInt(counts.Queued) +
		" Running: " + fmtInt(counts.Running) +
		" Done: " + fmtInt(counts.Done) +
		" Passed: " + fmtInt(counts.Passed) +
		" Failed: " + fmtInt(counts.Failed)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderScores renders the running mean F1 of both learners once a ground truth has passed.
func renderScores(state State, noColor bool) string {
	scores := state.Scores
	if scores.Passed == 0 {
		return stylize("Mean F1: waiting for the first result", noColor, lipgloss.Color("242"))
	}
	dfa, vpa := scores.MeanF1()
	line := fmt.Sprintf("Mean F1 over %d: %s %.4f | %s %.4f", scores.Passed,
		labelOr(scores.DFALabel, "DFA"), dfa, labelOr(scores.VPALabel, "VPA"), vpa)
	color := lipgloss.Color("70")
	if dfa > vpa {
		color = lipgloss.Color("172")
	}
	return stylize(line, noColor, color)
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
