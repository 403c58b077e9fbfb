package runner

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"learnbench/internal/automaton"
	"learnbench/internal/compare"
	"learnbench/internal/learner"
	"learnbench/internal/split"
	"learnbench/internal/trace"
)

var errBoom = errors.New("boom")

// fixedGenerator returns the same dataset for every ground truth.
type fixedGenerator struct {
	data trace.Dataset
}

func (g fixedGenerator) Generate(context.Context, automaton.GroundTruth, *rand.Rand) (trace.Dataset, error) {
	return g.data, nil
}

func fourTraces() trace.Dataset {
	return trace.Dataset{
		trace.New([]string{"a"}, true),
		trace.New([]string{"b"}, false),
		trace.New([]string{"a", "a"}, true),
		trace.New([]string{"b", "b"}, false),
	}
}

// failOnSymbol fails when the alphabet contains symbol and otherwise rejects everything.
func failOnSymbol(symbol string) learner.Learner {
	return learner.Func(func(ctx context.Context, data trace.Dataset, alphabet automaton.Alphabet, opts learner.Options) (learner.Model, error) {
		if slices.Contains(alphabet.Merged(), symbol) {
			return nil, errBoom
		}
		return learner.Constant(false).Learn(ctx, data, alphabet, opts)
	})
}

func plainModel(t *testing.T, name string, symbols ...string) NamedModel {
	t.Helper()
	dfa, err := automaton.NewDFA(name, automaton.Plain(symbols...), "q0", []automaton.DFAState{{ID: "q0"}})
	if err != nil {
		t.Fatalf("new dfa: %v", err)
	}
	return NamedModel{Name: name, Model: dfa}
}

func fixedReporter() compare.Reporter {
	return compare.Reporter{
		Generator:  fixedGenerator{data: fourTraces()},
		Splitter:   split.Splitter{Boundary: split.BoundaryWithin},
		DFALearner: learner.Constant(true),
		VPALearner: failOnSymbol("boom"),
	}
}

func fixedDeps() RunDependencies {
	return RunDependencies{
		RunID: func() (string, error) { return "run-1", nil },
		Now:   func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func catalogueModels(t *testing.T) []NamedModel {
	t.Helper()
	models := make([]NamedModel, 0)
	for _, vpa := range automaton.Catalogue() {
		models = append(models, NamedModel{Name: vpa.Label(), Model: vpa})
	}
	return models
}
