package runner

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"learnbench/internal/automaton"
	"learnbench/internal/compare"
	"learnbench/internal/vcs"
)

// FailurePolicy decides what happens after an experiment fails.
type FailurePolicy string

const (
	// FailAbort stops the run at the first failed experiment.
	FailAbort FailurePolicy = "abort"
	// FailContinue reports the failure and moves on to the next experiment.
	FailContinue FailurePolicy = "continue"
)

// ParseFailurePolicy maps a config value to a policy. Empty means FailAbort.
func ParseFailurePolicy(value string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", FailAbort:
		return FailAbort, nil
	case FailContinue:
		return FailContinue, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q (want abort or continue)", value)
	}
}

// NamedModel is a ground truth with a display name.
type NamedModel struct {
	Name  string
	Model automaton.GroundTruth
}

// RunDependencies allows injecting clocks, identifiers and sinks for a run.
type RunDependencies struct {
	RunID    func() (string, error)
	Now      func() time.Time
	Logger   *zap.Logger
	Observer RunObserver
}

// RunParams configures a run invocation.
type RunParams struct {
	Reporter  compare.Reporter
	Seed      uint64
	Workers   int
	OnFailure FailurePolicy
	// Output receives one summary line per ground truth.
	Output        io.Writer
	Verbose       bool
	VerboseWriter io.Writer
	NoColor       bool
	// Workspace records the git state of the benchmark workspace when known.
	Workspace *vcs.Provenance
	Deps      RunDependencies
}

// Outcome is the tagged result of one experiment: Result is set on success, Err on failure.
type Outcome struct {
	Index    int
	Name     string
	Result   *compare.ComparisonResult
	Err      error
	Duration time.Duration
}

// Failed reports whether the experiment ended in an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}
