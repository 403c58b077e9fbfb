package automaton

import "fmt"

// EmptyStack is the guard of a return transition that fires on an empty stack.
const EmptyStack = "_"

// CallTransition moves to Target and pushes Push.
type CallTransition struct {
	Target string `json:"target"`
	Push   string `json:"push"`
}

// ReturnTransition fires when the stack top equals Pop, pops it and moves to Target.
// A Pop of EmptyStack fires only on an empty stack and pops nothing.
type ReturnTransition struct {
	Pop    string `json:"pop"`
	Target string `json:"target"`
}

// VPAState is one state of a visibly-pushdown acceptor.
type VPAState struct {
	ID        string                        `json:"id"`
	Accepting bool                          `json:"accepting"`
	Internal  map[string]string             `json:"internal,omitempty"`
	Call      map[string]CallTransition     `json:"call,omitempty"`
	Return    map[string][]ReturnTransition `json:"return,omitempty"`
}

// VPA is a visibly-pushdown acceptor. It accepts when the current state is accepting
// and the stack is empty. A missing transition rejects until the next Reset.
type VPA struct {
	Name     string
	Alphabet Alphabet
	Initial  string
	States   []VPAState

	index   map[string]int
	current int
	stack   []string
}

// NewVPA validates states and returns a VPA positioned at its initial configuration.
func NewVPA(name string, alphabet Alphabet, initial string, states []VPAState) (*VPA, error) {
	if err := alphabet.Validate(); err != nil {
		return nil, fmt.Errorf("vpa %s: %w", name, err)
	}
	v := &VPA{Name: name, Alphabet: alphabet, Initial: initial, States: states}
	v.index = make(map[string]int, len(states))
	for i, s := range states {
		if _, ok := v.index[s.ID]; ok {
			return nil, fmt.Errorf("vpa %s: %w %q", name, ErrDuplicateState, s.ID)
		}
		v.index[s.ID] = i
	}
	if _, ok := v.index[initial]; !ok {
		return nil, fmt.Errorf("vpa %s: initial %w %q", name, ErrUnknownState, initial)
	}
	known := func(target string) error {
		if _, ok := v.index[target]; !ok {
			return fmt.Errorf("vpa %s: %w %q", name, ErrUnknownState, target)
		}
		return nil
	}
	for _, s := range states {
		for _, target := range s.Internal {
			if err := known(target); err != nil {
				return nil, err
			}
		}
		for _, call := range s.Call {
			if err := known(call.Target); err != nil {
				return nil, err
			}
		}
		for _, returns := range s.Return {
			for _, ret := range returns {
				if err := known(ret.Target); err != nil {
					return nil, err
				}
			}
		}
	}
	v.Reset()
	return v, nil
}

// Label returns the VPA name.
func (v *VPA) Label() string { return v.Name }

// InputAlphabet returns the structured alphabet.
func (v *VPA) InputAlphabet() Alphabet { return v.Alphabet }

// Size returns the number of states.
func (v *VPA) Size() int { return len(v.States) }

// AcceptsEmpty reports whether the initial state is accepting.
func (v *VPA) AcceptsEmpty() bool {
	return v.States[v.index[v.Initial]].Accepting
}

// Reset returns to the initial state with an empty stack.
func (v *VPA) Reset() {
	v.current = v.index[v.Initial]
	v.stack = v.stack[:0]
}

// Execute steps through seq from the current configuration.
func (v *VPA) Execute(seq []string) []bool {
	out := make([]bool, len(seq))
	for i, symbol := range seq {
		out[i] = v.step(symbol)
	}
	return out
}

func (v *VPA) step(symbol string) bool {
	if v.current < 0 {
		return false
	}
	state := v.States[v.current]
	switch v.Alphabet.Kind(symbol) {
	case KindCall:
		call, ok := state.Call[symbol]
		if !ok {
			return v.die()
		}
		v.stack = append(v.stack, call.Push)
		v.current = v.index[call.Target]
	case KindReturn:
		next, ok := v.matchReturn(state.Return[symbol])
		if !ok {
			return v.die()
		}
		v.current = v.index[next]
	default:
		target, ok := state.Internal[symbol]
		if !ok {
			return v.die()
		}
		v.current = v.index[target]
	}
	return v.States[v.current].Accepting && len(v.stack) == 0
}

func (v *VPA) matchReturn(candidates []ReturnTransition) (string, bool) {
	if len(v.stack) == 0 {
		for _, ret := range candidates {
			if ret.Pop == EmptyStack {
				return ret.Target, true
			}
		}
		return "", false
	}
	top := v.stack[len(v.stack)-1]
	for _, ret := range candidates {
		if ret.Pop == top {
			v.stack = v.stack[:len(v.stack)-1]
			return ret.Target, true
		}
	}
	return "", false
}

func (v *VPA) die() bool {
	v.current = -1
	v.stack = v.stack[:0]
	return false
}
