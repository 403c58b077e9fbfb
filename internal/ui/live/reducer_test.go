package live

import (
	"errors"
	"strings"
	"testing"
	"time"

	"learnbench/internal/compare"
	"learnbench/internal/metrics"
	"learnbench/internal/runner"
	"learnbench/internal/testutil"
	"learnbench/internal/trace"
)

// TestReduceExperimentLifecycle verifies rows move from queued to passed.
func TestReduceExperimentLifecycle(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		state := Reduce(State{}, Event{Kind: EventRunStart, RunID: "run-1", Total: 3})
		if len(state.Rows) != 3 || state.Counts.Queued != 3 {
			t.Fatalf("expected 3 queued rows, got %+v", state.Counts)
		}
		state = Reduce(state, Event{Kind: EventExperimentStart, Index: 0, Name: "anbn", EmittedAt: start})
		if state.Rows[0].Status != StatusRunning || state.Counts.Running != 1 {
			t.Fatalf("expected running row, got %+v", state.Rows[0])
		}
		state = Reduce(state, endEvent(passedOutcome(0), start.Add(time.Second)))

		row := state.Rows[0]
		if row.Status != StatusPassed || row.DFA.Size != 3 || row.VPA.F1 != 1 || row.Learning.Negative != 2 {
			t.Fatalf("unexpected row: %+v", row)
		}
		if state.Counts.Passed != 1 || state.Counts.Done != 1 || state.Counts.Queued != 2 {
			t.Fatalf("unexpected counts: %+v", state.Counts)
		}
		if !strings.Contains(state.LastEvent, "GT 1 finished") {
			t.Fatalf("unexpected last event: %s", state.LastEvent)
		}
	})
}

// TestReduceFailedExperiment verifies failures are recorded with their error.
func TestReduceFailedExperiment(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := Reduce(State{}, endEvent(runner.Outcome{Index: 4, Name: "dyck", Err: errors.New("boom")}, time.Now()))
		if len(state.Rows) != 5 {
			t.Fatalf("expected rows to grow to 5, got %d", len(state.Rows))
		}
		row := state.Rows[4]
		if row.Status != StatusFailed || row.Error != "boom" || row.Name != "dyck" {
			t.Fatalf("unexpected failed row: %+v", row)
		}
		if state.Counts.Failed != 1 || state.LastEvent != "GT 5 failed: boom" {
			t.Fatalf("unexpected state: %+v", state)
		}
	})
}

// TestRowsForStateFormatsCells verifies table rows for finished and pending experiments.
func TestRowsForStateFormatsCells(t *testing.T) {
	state := Reduce(State{}, Event{Kind: EventRunStart, Total: 2})
	state = Reduce(state, endEvent(passedOutcome(0), time.Now()))
	rows := rowsForState(state, time.Now(), true)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	first := rows[0]
	if first[0] != "01" || first[1] != "anbn" || first[2] != "pass" || first[3] != "1.5s" || first[4] != "1/2" || first[6] != "3 / 0.500" || first[7] != "2 / 1.000" {
		t.Fatalf("unexpected first row: %v", first)
	}
	if rows[1][2] != "queued" || rows[1][6] != "" {
		t.Fatalf("unexpected pending row: %v", rows[1])
	}
	if len(columnsForWidth(60)) != len(first) {
		t.Fatalf("column count mismatch")
	}
}

// TestControllerDropsEventsAfterClose verifies sends after close do not panic.
func TestControllerDropsEventsAfterClose(t *testing.T) {
	c := &Controller{events: make(chan Event, 1), now: time.Now}
	c.OnRunStart("run-1", 1)
	c.Close()
	c.OnExperimentStart(0, "anbn")
	c.Close()
	event, ok := <-c.events
	if !ok || event.Kind != EventRunStart || event.EmittedAt.IsZero() {
		t.Fatalf("expected buffered run start, got %+v", event)
	}
	if _, ok := <-c.events; ok {
		t.Fatalf("expected closed channel")
	}
}

func passedOutcome(index int) runner.Outcome {
	return runner.Outcome{
		Index: index,
		Name:  "anbn",
		Result: &compare.ComparisonResult{
			DFALabel: "RPNI",
			VPALabel: "PAPNI",
			DFASize:  3,
			VPASize:  2,
			DFA:      metrics.MetricTriple{Precision: 0.5, Recall: 0.5, F1: 0.5},
			VPA:      metrics.MetricTriple{Precision: 1, Recall: 1, F1: 1},
			Learning: trace.Balance{Positive: 1, Negative: 2},
			Test:     trace.Balance{Positive: 1, Negative: 1},
		},
		Duration: 1500 * time.Millisecond,
	}
}

func endEvent(outcome runner.Outcome, when time.Time) Event {
	return Event{Kind: EventExperimentEnd, Index: outcome.Index, Outcome: outcome, EmittedAt: when}
}

// runWithTimeout executes a test body with a timeout.
func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timed out")
	}
}

// TestReduceTalliesPassedScores verifies failed rows stay out of the running mean.
func TestReduceTalliesPassedScores(t *testing.T) {
	state := Reduce(State{}, Event{Kind: EventRunStart, RunID: "run-2", Total: 3})
	state = Reduce(state, endEvent(passedOutcome(0), time.Time{}))
	state = Reduce(state, endEvent(runner.Outcome{Index: 1, Name: "bad", Err: errors.New("boom")}, time.Time{}))
	state = Reduce(state, endEvent(passedOutcome(2), time.Time{}))

	if state.Scores.Passed != 2 || state.Scores.DFALabel != "RPNI" || state.Scores.VPALabel != "PAPNI" {
		t.Fatalf("unexpected tally: %+v", state.Scores)
	}
	dfa, vpa := state.Scores.MeanF1()
	if dfa != 0.5 || vpa != 1 {
		t.Fatalf("unexpected means: %v %v", dfa, vpa)
	}
	if dfa, vpa := (ScoreTally{}).MeanF1(); dfa != 0 || vpa != 0 {
		t.Fatalf("expected zero means for an empty tally")
	}
}
