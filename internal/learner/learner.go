// Package learner adapts passive automaton learners to a common interface.
// Learning itself happens elsewhere: in external programs or in functions
// supplied by the caller.
package learner

import (
	"context"
	"errors"

	"learnbench/internal/automaton"
	"learnbench/internal/trace"
)

// Kind names the formalism a learner produces.
type Kind string

const (
	KindDFA Kind = "dfa"
	KindVPA Kind = "vpa"
)

// InputCompleteness controls how a learner treats symbols a state has no transition for.
type InputCompleteness string

const (
	// Partial leaves missing transitions undefined.
	Partial InputCompleteness = ""
	// SinkState routes every missing transition to a rejecting sink.
	SinkState InputCompleteness = "sink_state"
)

// Options are passed verbatim to the learner.
type Options struct {
	InputCompleteness InputCompleteness `json:"input_completeness,omitempty"`
}

// Model is a learned acceptor with a reportable size.
type Model interface {
	automaton.Acceptor
	Size() int
}

// Learner infers a model from labeled traces over alphabet.
type Learner interface {
	Learn(ctx context.Context, data trace.Dataset, alphabet automaton.Alphabet, opts Options) (Model, error)
}

// ErrNoModel indicates a learner that returned neither a model nor an error.
var ErrNoModel = errors.New("learner returned no model")

// Func adapts a function to the Learner interface.
type Func func(ctx context.Context, data trace.Dataset, alphabet automaton.Alphabet, opts Options) (Model, error)

// Learn calls f.
func (f Func) Learn(ctx context.Context, data trace.Dataset, alphabet automaton.Alphabet, opts Options) (Model, error) {
	return f(ctx, data, alphabet, opts)
}
