package automaton

import (
	"errors"
	"fmt"
	"sort"
)

// SinkStateID is the preferred identifier for the state added by Complete.
const SinkStateID = "sink"

var (
	// ErrUnknownState indicates a reference to a state that was never declared.
	ErrUnknownState = errors.New("unknown state")
	// ErrDuplicateState indicates two states share an identifier.
	ErrDuplicateState = errors.New("duplicate state")
)

// DFAState is one state of a DFA.
type DFAState struct {
	ID          string            `json:"id"`
	Accepting   bool              `json:"accepting"`
	Transitions map[string]string `json:"transitions,omitempty"`
}

// DFA is a deterministic finite acceptor. A missing transition moves it into a
// rejecting dead configuration until the next Reset.
type DFA struct {
	Name     string
	Alphabet Alphabet
	Initial  string
	States   []DFAState

	index   map[string]int
	current int
}

// NewDFA validates states and returns a DFA positioned at its initial state.
func NewDFA(name string, alphabet Alphabet, initial string, states []DFAState) (*DFA, error) {
	d := &DFA{Name: name, Alphabet: alphabet, Initial: initial, States: states}
	if err := d.build(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DFA) build() error {
	d.index = make(map[string]int, len(d.States))
	for i, s := range d.States {
		if _, ok := d.index[s.ID]; ok {
			return fmt.Errorf("dfa %s: %w %q", d.Name, ErrDuplicateState, s.ID)
		}
		d.index[s.ID] = i
	}
	if _, ok := d.index[d.Initial]; !ok {
		return fmt.Errorf("dfa %s: initial %w %q", d.Name, ErrUnknownState, d.Initial)
	}
	for _, s := range d.States {
		for symbol, target := range s.Transitions {
			if _, ok := d.index[target]; !ok {
				return fmt.Errorf("dfa %s: transition %s -%s-> %w %q", d.Name, s.ID, symbol, ErrUnknownState, target)
			}
		}
	}
	d.current = d.index[d.Initial]
	return nil
}

// Label returns the DFA name.
func (d *DFA) Label() string { return d.Name }

// InputAlphabet returns the declared alphabet.
func (d *DFA) InputAlphabet() Alphabet { return d.Alphabet }

// Size returns the number of states.
func (d *DFA) Size() int { return len(d.States) }

// AcceptsEmpty reports whether the initial state is accepting.
func (d *DFA) AcceptsEmpty() bool {
	return d.States[d.index[d.Initial]].Accepting
}

// Reset returns to the initial state.
func (d *DFA) Reset() {
	d.current = d.index[d.Initial]
}

// Execute steps through seq from the current state.
func (d *DFA) Execute(seq []string) []bool {
	out := make([]bool, len(seq))
	for i, symbol := range seq {
		out[i] = d.step(symbol)
	}
	return out
}

func (d *DFA) step(symbol string) bool {
	if d.current < 0 {
		return false
	}
	target, ok := d.States[d.current].Transitions[symbol]
	if !ok {
		d.current = -1
		return false
	}
	d.current = d.index[target]
	return d.States[d.current].Accepting
}

// Complete returns a copy where every state has a transition on every symbol of
// alphabet (and of any symbol already used), routing missing ones to a rejecting sink.
// The receiver is returned unchanged when it is already complete.
func (d *DFA) Complete(alphabet Alphabet) (*DFA, error) {
	symbols := map[string]struct{}{}
	for _, s := range alphabet.Merged() {
		symbols[s] = struct{}{}
	}
	for _, s := range d.States {
		for symbol := range s.Transitions {
			symbols[symbol] = struct{}{}
		}
	}
	ordered := make([]string, 0, len(symbols))
	for s := range symbols {
		ordered = append(ordered, s)
	}
	sort.Strings(ordered)

	missing := false
	for _, s := range d.States {
		for _, symbol := range ordered {
			if _, ok := s.Transitions[symbol]; !ok {
				missing = true
			}
		}
	}
	if !missing {
		return d, nil
	}

	sinkID := SinkStateID
	for i := 1; ; i++ {
		if _, taken := d.index[sinkID]; !taken {
			break
		}
		sinkID = fmt.Sprintf("%s_%d", SinkStateID, i)
	}

	states := make([]DFAState, 0, len(d.States)+1)
	for _, s := range d.States {
		next := make(map[string]string, len(ordered))
		for symbol, target := range s.Transitions {
			next[symbol] = target
		}
		for _, symbol := range ordered {
			if _, ok := next[symbol]; !ok {
				next[symbol] = sinkID
			}
		}
		states = append(states, DFAState{ID: s.ID, Accepting: s.Accepting, Transitions: next})
	}
	sink := DFAState{ID: sinkID, Transitions: make(map[string]string, len(ordered))}
	for _, symbol := range ordered {
		sink.Transitions[symbol] = sinkID
	}
	states = append(states, sink)

	return NewDFA(d.Name, d.Alphabet, d.Initial, states)
}
