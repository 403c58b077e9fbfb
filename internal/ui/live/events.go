package live

import (
	"time"

	"learnbench/internal/runner"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventExperimentStart signals that a ground truth started.
	EventExperimentStart
	// EventExperimentEnd delivers a finished experiment.
	EventExperimentEnd
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind      EventKind
	RunID     string
	Total     int
	Index     int
	Name      string
	Outcome   runner.Outcome
	EmittedAt time.Time
}
