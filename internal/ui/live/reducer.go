package live

import (
	"fmt"
	"time"
)

// Reduce applies an experiment event to the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventRunStart:
		state.RunID = event.RunID
		state.Total = event.Total
		state = ensureRow(state, event.Total-1)
	case EventExperimentStart:
		state = ensureRow(state, event.Index)
		state = applyStart(state, event)
	case EventExperimentEnd:
		state = ensureRow(state, event.Outcome.Index)
		state = applyEnd(state, event)
	}
	state.Counts = recount(state.Rows)
	state.Scores = tally(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, index int) State {
	if index < 0 || index < len(state.Rows) {
		return state
	}
	rows := make([]ExperimentRow, index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = ExperimentRow{Index: i, Status: StatusQueued}
	}
	state.Rows = rows
	return state
}

func applyStart(state State, event Event) State {
	if event.Index < 0 || event.Index >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.Index]
	row.Name = event.Name
	row.Status = StatusRunning
	row.StartedAt = event.EmittedAt
	state.Rows[event.Index] = row
	return state
}

func applyEnd(state State, event Event) State {
	outcome := event.Outcome
	if outcome.Index < 0 || outcome.Index >= len(state.Rows) {
		return state
	}
	row := state.Rows[outcome.Index]
	if row.Name == "" {
		row.Name = outcome.Name
	}
	row.FinishedAt = event.EmittedAt
	row.Duration = outcome.Duration
	if outcome.Failed() {
		row.Status = StatusFailed
		row.Error = outcome.Err.Error()
	} else {
		row.Status = StatusPassed
		if r := outcome.Result; r != nil {
			row.Learning = r.Learning
			row.Test = r.Test
			row.DFA = LearnerCell{Label: r.DFALabel, Size: r.DFASize, F1: r.DFA.F1}
			row.VPA = LearnerCell{Label: r.VPALabel, Size: r.VPASize, F1: r.VPA.F1}
		}
	}
	state.Rows[outcome.Index] = row
	return state
}

// recount recomputes status counts for the current rows.
func recount(rows []ExperimentRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case StatusQueued:
			counts.Queued++
		case StatusRunning:
			counts.Running++
		case StatusPassed:
			counts.Done++
			counts.Passed++
		case StatusFailed:
			counts.Done++
			counts.Failed++
		}
	}
	return counts
}

// tally sums the headline F1 of every passed row in index order.
func tally(rows []ExperimentRow) ScoreTally {
	var t ScoreTally
	for _, row := range rows {
		if row.Status != StatusPassed {
			continue
		}
		t.Passed++
		t.DFAF1Sum += row.DFA.F1
		t.VPAF1Sum += row.VPA.F1
		if t.DFALabel == "" {
			t.DFALabel = row.DFA.Label
		}
		if t.VPALabel == "" {
			t.VPALabel = row.VPA.Label
		}
	}
	return t
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event Event) string {
	switch event.Kind {
	case EventExperimentStart:
		return fmt.Sprintf("GT %d %s started", event.Index+1, event.Name)
	case EventExperimentEnd:
		outcome := event.Outcome
		if outcome.Failed() {
			return fmt.Sprintf("GT %d failed: %v", outcome.Index+1, outcome.Err)
		}
		return fmt.Sprintf("GT %d finished (%s)", outcome.Index+1, formatDuration(outcome.Duration))
	}
	return ""
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}
