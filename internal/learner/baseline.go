package learner

import (
	"context"

	"learnbench/internal/automaton"
	"learnbench/internal/trace"
)

// Names of the baseline learners in Builtin.
const (
	BaselineRejectAll = "reject-all"
	BaselineAcceptAll = "accept-all"
)

// Constant returns a learner that ignores its data and accepts every word when accept is
// true, or rejects every word otherwise.
// The result is a one-state DFA over the merged alphabet.
func Constant(accept bool) Learner {
	return Func(func(ctx context.Context, _ trace.Dataset, alphabet automaton.Alphabet, _ Options) (Model, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		state := automaton.DFAState{ID: "q0", Accepting: accept, Transitions: map[string]string{}}
		for _, symbol := range alphabet.Merged() {
			state.Transitions[symbol] = "q0"
		}
		name := BaselineRejectAll
		if accept {
			name = BaselineAcceptAll
		}
		return automaton.NewDFA(name, automaton.Plain(alphabet.Merged()...), "q0", []automaton.DFAState{state})
	})
}
