package runner

import (
	"time"

	"learnbench/internal/compare"
	"learnbench/internal/metrics"
	"learnbench/internal/vcs"
)

// Status values of an experiment.
const (
	StatusPass    = "pass"
	StatusFail    = "fail"
	StatusSkipped = "skipped"
)

type Results struct {
	RunID       string             `json:"run_id"`
	Settings    RunSettings        `json:"settings"`
	Workspace   *vcs.Provenance    `json:"workspace,omitempty"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Experiments []ExperimentResult `json:"experiments"`
	Summary     RunSummary         `json:"summary"`
}

type RunSettings struct {
	Seed      uint64        `json:"seed"`
	Workers   int           `json:"workers"`
	OnFailure FailurePolicy `json:"on_failure"`
	DFALabel  string        `json:"dfa_label"`
	VPALabel  string        `json:"vpa_label"`
}

type ExperimentResult struct {
	Index           int                       `json:"index"`
	Name            string                    `json:"name"`
	Status          string                    `json:"status"`
	FailureReason   *string                   `json:"failure_reason"`
	Comparison      *compare.ComparisonResult `json:"comparison,omitempty"`
	WallTimeSeconds float64                   `json:"wall_time_seconds"`
}

type RunSummary struct {
	ExperimentsTotal   int            `json:"experiments_total"`
	ExperimentsPassed  int            `json:"experiments_passed"`
	ExperimentsFailed  int            `json:"experiments_failed"`
	ExperimentsSkipped int            `json:"experiments_skipped"`
	PassRate           float64        `json:"pass_rate"`
	DFA                LearnerSummary `json:"dfa"`
	VPA                LearnerSummary `json:"vpa"`
}

type LearnerSummary struct {
	Label     string                  `json:"label"`
	Size      Distribution            `json:"size"`
	Precision Distribution            `json:"precision"`
	Recall    Distribution            `json:"recall"`
	F1        Distribution            `json:"f1"`
	Pooled    metrics.ConfusionCounts `json:"pooled"`
	// Micro is derived from the pooled counts of all passed experiments.
	Micro metrics.MetricTriple `json:"micro"`
}

// Distribution describes a sample of per-experiment values.
type Distribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// experimentResult converts an outcome into its persisted form.
func experimentResult(outcome Outcome) ExperimentResult {
	result := ExperimentResult{
		Index:           outcome.Index + 1,
		Name:            outcome.Name,
		Status:          StatusPass,
		Comparison:      outcome.Result,
		WallTimeSeconds: outcome.Duration.Seconds(),
	}
	if outcome.Err != nil {
		reason := outcome.Err.Error()
		result.Status = StatusFail
		result.FailureReason = &reason
		result.Comparison = nil
	}
	return result
}
