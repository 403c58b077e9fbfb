// Package compare runs two learners on the same learning set and scores both
// against the same held-out test set.
package compare

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"learnbench/internal/automaton"
	"learnbench/internal/generate"
	"learnbench/internal/learner"
	"learnbench/internal/metrics"
	"learnbench/internal/split"
	"learnbench/internal/trace"
)

// Default learner labels used in reports.
const (
	DefaultDFALabel = "RPNI"
	DefaultVPALabel = "PAPNI"
)

// ErrMissingLearner indicates a Reporter without one of its learners.
var ErrMissingLearner = errors.New("reporter needs both a DFA and a VPA learner")

// LearnerError wraps a failure raised by one of the learners.
type LearnerError struct {
	Learner string
	Err     error
}

func (e *LearnerError) Error() string {
	return fmt.Sprintf("learner %s: %v", e.Learner, e.Err)
}

func (e *LearnerError) Unwrap() error { return e.Err }

// ComparisonResult is the outcome of one ground truth.
type ComparisonResult struct {
	DFALabel  string                  `json:"dfa_label"`
	VPALabel  string                  `json:"vpa_label"`
	DFASize   int                     `json:"dfa_size"`
	VPASize   int                     `json:"vpa_size"`
	DFA       metrics.MetricTriple    `json:"dfa"`
	VPA       metrics.MetricTriple    `json:"vpa"`
	DFACounts metrics.ConfusionCounts `json:"dfa_counts"`
	VPACounts metrics.ConfusionCounts `json:"vpa_counts"`
	Learning  trace.Balance           `json:"learning"`
	Test      trace.Balance           `json:"test"`
}

// Reporter wires the generator, splitter and both learners together.
type Reporter struct {
	Generator  generate.Generator
	Splitter   split.Splitter
	DFALearner learner.Learner
	VPALearner learner.Learner
	DFALabel   string
	VPALabel   string
}

// Compare generates a dataset from gt, splits it, learns a DFA and a VPA from the
// learning subset and evaluates both on the test subset.
func (r Reporter) Compare(ctx context.Context, gt automaton.GroundTruth, rng *rand.Rand) (ComparisonResult, error) {
	if r.DFALearner == nil || r.VPALearner == nil {
		return ComparisonResult{}, ErrMissingLearner
	}
	gen := r.Generator
	if gen == nil {
		gen = generate.RandomSampler{Count: generate.DefaultCount, MaxLength: generate.DefaultMaxLength}
	}
	data, err := gen.Generate(ctx, gt, rng)
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("generate traces: %w", err)
	}
	return r.CompareDataset(ctx, gt.InputAlphabet(), data)
}

// CompareDataset splits an existing dataset and runs both learners on it.
func (r Reporter) CompareDataset(ctx context.Context, alphabet automaton.Alphabet, data trace.Dataset) (ComparisonResult, error) {
	if r.DFALearner == nil || r.VPALearner == nil {
		return ComparisonResult{}, ErrMissingLearner
	}
	learning, test, err := r.Splitter.Split(data)
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("split dataset: %w", err)
	}
	result := ComparisonResult{
		DFALabel: labelOr(r.DFALabel, DefaultDFALabel),
		VPALabel: labelOr(r.VPALabel, DefaultVPALabel),
		Learning: learning.Balance(),
		Test:     test.Balance(),
	}

	flat := automaton.Plain(alphabet.Merged()...)
	dfa, err := learn(ctx, r.DFALearner, result.DFALabel, learning, flat, learner.Options{InputCompleteness: learner.SinkState})
	if err != nil {
		return ComparisonResult{}, err
	}
	if d, ok := dfa.(*automaton.DFA); ok {
		completed, err := d.Complete(flat)
		if err != nil {
			return ComparisonResult{}, &LearnerError{Learner: result.DFALabel, Err: err}
		}
		dfa = completed
	}
	if err := ctx.Err(); err != nil {
		return ComparisonResult{}, err
	}
	vpa, err := learn(ctx, r.VPALearner, result.VPALabel, learning, alphabet, learner.Options{})
	if err != nil {
		return ComparisonResult{}, err
	}

	result.DFASize = dfa.Size()
	result.VPASize = vpa.Size()
	result.DFACounts, result.DFA = metrics.Score(dfa, test)
	result.VPACounts, result.VPA = metrics.Score(vpa, test)
	return result, nil
}

func learn(ctx context.Context, l learner.Learner, label string, data trace.Dataset, alphabet automaton.Alphabet, opts learner.Options) (learner.Model, error) {
	model, err := l.Learn(ctx, data, alphabet, opts)
	if err != nil {
		return nil, &LearnerError{Learner: label, Err: err}
	}
	if model == nil {
		return nil, &LearnerError{Learner: label, Err: learner.ErrNoModel}
	}
	return model, nil
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
