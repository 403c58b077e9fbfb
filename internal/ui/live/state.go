package live

import (
	"time"

	"learnbench/internal/trace"
)

// ExperimentStatus is the display status of one ground truth.
type ExperimentStatus string

const (
	StatusQueued  ExperimentStatus = "queued"
	StatusRunning ExperimentStatus = "running"
	StatusPassed  ExperimentStatus = "pass"
	StatusFailed  ExperimentStatus = "fail"
)

// LearnerCell holds one learner's headline result.
type LearnerCell struct {
	Label string
	Size  int
	F1    float64
}

// ExperimentRow holds UI state for a single ground truth.
type ExperimentRow struct {
	Index      int
	Name       string
	Status     ExperimentStatus
	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration
	Learning   trace.Balance
	Test       trace.Balance
	DFA        LearnerCell
	VPA        LearnerCell
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued  int
	Running int
	Done    int
	Passed  int
	Failed  int
}

// ScoreTally accumulates F1 over the passed ground truths.
type ScoreTally struct {
	Passed   int
	DFALabel string
	VPALabel string
	DFAF1Sum float64
	VPAF1Sum float64
}

// MeanF1 returns the running mean F1 of both learners, zero before the first pass.
func (t ScoreTally) MeanF1() (dfa, vpa float64) {
	if t.Passed == 0 {
		return 0, 0
	}
	n := float64(t.Passed)
	return t.DFAF1Sum / n, t.VPAF1Sum / n
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	Total     int
	StartedAt time.Time
	LastEvent string
	Rows      []ExperimentRow
	Counts    StatusCounts
	Scores    ScoreTally
}
