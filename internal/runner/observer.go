package runner

// RunObserver receives run lifecycle events for UI or logging.
// With more than one worker, experiment callbacks arrive from several goroutines.
type RunObserver interface {
	// OnRunStart signals the start of a run over total ground truths.
	OnRunStart(runID string, total int)
	// OnExperimentStart signals that the experiment at index began.
	OnExperimentStart(index int, name string)
	// OnExperimentEnd delivers a finished experiment.
	OnExperimentEnd(outcome Outcome)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

type nopObserver struct{}

func (nopObserver) OnRunStart(string, int)         {}
func (nopObserver) OnExperimentStart(int, string) {}
func (nopObserver) OnExperimentEnd(Outcome)        {}
func (nopObserver) OnRunEnd(Results)               {}
