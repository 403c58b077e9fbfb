package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"learnbench/internal/compare"
)

// ErrNoModels indicates a run without ground truths.
var ErrNoModels = errors.New("no ground-truth models to run")

// runState carries the resolved dependencies of a single Run call.
type runState struct {
	params   RunParams
	out      io.Writer
	verbose  verboseLog
	logger   *zap.Logger
	observer RunObserver
	now      func() time.Time
}

// Run compares both learners on every model and writes one line per model to
// params.Output in input order. Under FailAbort the first failure stops the run and
// is returned together with the results gathered so far; the lines already written
// stay. Under FailContinue failures are reported inline and Run returns a nil error
// unless ctx is canceled.
func Run(ctx context.Context, models []NamedModel, params RunParams) (Results, error) {
	if len(models) == 0 {
		return Results{}, ErrNoModels
	}
	if params.Reporter.DFALearner == nil || params.Reporter.VPALearner == nil {
		return Results{}, compare.ErrMissingLearner
	}
	policy, err := ParseFailurePolicy(string(params.OnFailure))
	if err != nil {
		return Results{}, err
	}
	params.OnFailure = policy
	if params.Workers <= 0 {
		params.Workers = 1
	}
	runID, err := ensureRunID(params.Deps.RunID)
	if err != nil {
		return Results{}, err
	}

	state := runState{
		params:   params,
		out:      params.Output,
		verbose:  newVerboseLog(params),
		logger:   params.Deps.Logger,
		observer: params.Deps.Observer,
		now:      params.Deps.Now,
	}
	if state.out == nil {
		state.out = io.Discard
	}
	if state.logger == nil {
		state.logger = zap.NewNop()
	}
	if state.observer == nil {
		state.observer = nopObserver{}
	}
	if state.now == nil {
		state.now = time.Now
	}
	logger := state.logger.With(zap.String("run_id", runID))
	state.logger = logger

	settings := RunSettings{
		Seed:      params.Seed,
		Workers:   params.Workers,
		OnFailure: policy,
		DFALabel:  labelOr(params.Reporter.DFALabel, compare.DefaultDFALabel),
		VPALabel:  labelOr(params.Reporter.VPALabel, compare.DefaultVPALabel),
	}
	startedAt := state.now()
	state.observer.OnRunStart(runID, len(models))
	logger.Info("run started", zap.Int("models", len(models)), zap.Uint64("seed", params.Seed), zap.Int("workers", params.Workers))
	state.verbose.printf(styleExperiment,
		"run %s: %d ground truths, seed=%d workers=%d on_failure=%s", runID, len(models), params.Seed, params.Workers, policy)

	var (
		experiments []ExperimentResult
		runErr      error
	)
	if params.Workers == 1 {
		experiments, runErr = state.runSequential(ctx, models)
	} else {
		experiments, runErr = state.runParallel(ctx, models)
	}

	results := Results{
		RunID:       runID,
		Settings:    settings,
		Workspace:   params.Workspace,
		StartedAt:   startedAt,
		FinishedAt:  state.now(),
		Experiments: experiments,
		Summary:     summarize(experiments, settings),
	}
	state.observer.OnRunEnd(results)
	logger.Info("run finished",
		zap.Int("passed", results.Summary.ExperimentsPassed),
		zap.Int("failed", results.Summary.ExperimentsFailed),
		zap.Int("skipped", results.Summary.ExperimentsSkipped),
		zap.Error(runErr),
	)
	if skipped := results.Summary.ExperimentsSkipped; skipped > 0 {
		state.verbose.printf(styleSkipped, "run %s: %d ground truths skipped", runID, skipped)
	}
	state.verbose.printf(styleMetrics,
		"run %s: passed=%d failed=%d skipped=%d mean F1 %s=%.4f %s=%.4f",
		runID, results.Summary.ExperimentsPassed, results.Summary.ExperimentsFailed, results.Summary.ExperimentsSkipped,
		results.Summary.DFA.Label, results.Summary.DFA.F1.Mean, results.Summary.VPA.Label, results.Summary.VPA.F1.Mean)
	return results, runErr
}

func (s *runState) runSequential(ctx context.Context, models []NamedModel) ([]ExperimentResult, error) {
	experiments := make([]ExperimentResult, 0, len(models))
	for i, model := range models {
		outcome := s.runExperiment(ctx, i, model)
		experiments = append(experiments, experimentResult(outcome))
		if err := s.emit(ctx, outcome); err != nil {
			return appendSkipped(experiments, models[i+1:], i+1), err
		}
	}
	return experiments, nil
}

// runParallel runs experiments on up to Workers goroutines and emits their
// outcomes in input order as soon as each prefix is complete.
func (s *runState) runParallel(ctx context.Context, models []NamedModel) ([]ExperimentResult, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]Outcome, len(models))
	ready := make([]chan struct{}, len(models))
	for i := range ready {
		ready[i] = make(chan struct{})
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(s.params.Workers)
	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, model := range models {
			g.Go(func() error {
				defer close(ready[i])
				if err := gctx.Err(); err != nil {
					outcomes[i] = Outcome{Index: i, Name: model.Name, Err: err}
					return nil
				}
				outcomes[i] = s.runExperiment(gctx, i, model)
				return nil
			})
		}
	}()

	experiments := make([]ExperimentResult, 0, len(models))
	var runErr error
	for i := range models {
		<-ready[i]
		experiments = append(experiments, experimentResult(outcomes[i]))
		if err := s.emit(ctx, outcomes[i]); err != nil {
			runErr = err
			experiments = appendSkipped(experiments, models[i+1:], i+1)
			cancel()
			break
		}
	}
	<-launched
	_ = g.Wait()
	return experiments, runErr
}

// runExperiment compares both learners on one ground truth with an rng derived from (seed, index).
func (s *runState) runExperiment(ctx context.Context, index int, model NamedModel) Outcome {
	s.observer.OnExperimentStart(index, model.Name)
	s.verbose.printf(styleExperiment, "GT %d %s: started", index+1, model.Name)
	started := time.Now()
	outcome := Outcome{Index: index, Name: model.Name}
	if model.Model == nil {
		outcome.Err = fmt.Errorf("model %q has no ground truth", model.Name)
	} else {
		rng := rand.New(rand.NewPCG(s.params.Seed, uint64(index)))
		result, err := s.params.Reporter.Compare(ctx, model.Model, rng)
		if err != nil {
			outcome.Err = err
		} else {
			outcome.Result = &result
		}
	}
	outcome.Duration = time.Since(started)
	s.observer.OnExperimentEnd(outcome)
	return outcome
}

// emit writes the outcome line and returns a non-nil error when the run must stop.
func (s *runState) emit(ctx context.Context, outcome Outcome) error {
	position := outcome.Index + 1
	if !outcome.Failed() {
		r := outcome.Result
		fmt.Fprintln(s.out, FormatLine(position, *r))
		s.logger.Info("experiment finished",
			zap.Int("index", position),
			zap.String("model", outcome.Name),
			zap.Duration("duration", outcome.Duration),
			zap.Int("dfa_size", r.DFASize),
			zap.Float64("dfa_f1", r.DFA.F1),
			zap.Int("vpa_size", r.VPASize),
			zap.Float64("vpa_f1", r.VPA.F1),
		)
		s.verbose.printf(styleMetrics,
			"GT %d %s: %s F1=%.4f %s F1=%.4f (%s)", position, outcome.Name,
			r.DFALabel, r.DFA.F1, r.VPALabel, r.VPA.F1, outcome.Duration.Round(time.Millisecond))
		return nil
	}

	err := fmt.Errorf("ground truth %d (%s): %w", position, outcome.Name, outcome.Err)
	s.verbose.printf(styleError, "GT %d %s: %v", position, outcome.Name, outcome.Err)
	if ctxErr := ctx.Err(); ctxErr != nil {
		s.logger.Warn("run canceled", zap.Int("index", position), zap.Error(ctxErr))
		return ctxErr
	}
	if s.params.OnFailure == FailAbort {
		s.logger.Error("experiment failed, aborting run", zap.Int("index", position), zap.String("model", outcome.Name), zap.Error(outcome.Err))
		return err
	}
	s.logger.Warn("experiment failed", zap.Int("index", position), zap.String("model", outcome.Name), zap.Error(outcome.Err))
	fmt.Fprintln(s.out, FormatFailure(position, outcome.Err))
	return nil
}

// appendSkipped records the models that never ran after an early stop.
func appendSkipped(experiments []ExperimentResult, rest []NamedModel, offset int) []ExperimentResult {
	for i, model := range rest {
		experiments = append(experiments, ExperimentResult{
			Index:  offset + i + 1,
			Name:   model.Name,
			Status: StatusSkipped,
		})
	}
	return experiments
}

// ensureRunID uses the provided generator or falls back to NewRunID.
func ensureRunID(generator func() (string, error)) (string, error) {
	if generator != nil {
		return generator()
	}
	return NewRunID()
}
