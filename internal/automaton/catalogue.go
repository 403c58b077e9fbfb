package automaton

import (
	"fmt"
	"sort"
)

// builtin pairs a catalogue name with a constructor. Constructors return fresh
// instances because acceptors carry execution state.
type builtin struct {
	name  string
	build func() *VPA
}

var catalogue = []builtin{
	{"balanced_parentheses", balancedParentheses},
	{"dyck_two", dyckTwo},
	{"anbn", anbn},
	{"anbn_marker", anbnMarker},
	{"balanced_with_marker", balancedWithMarker},
	{"even_pairs", evenPairs},
	{"xml_tags", xmlTags},
	{"nonempty_procedures", nonemptyProcedures},
	{"bounded_depth_two", boundedDepthTwo},
	{"return_heavy", returnHeavy},
}

// Catalogue returns fresh instances of every built-in benchmark acceptor, in a fixed order.
func Catalogue() []*VPA {
	out := make([]*VPA, 0, len(catalogue))
	for _, b := range catalogue {
		out = append(out, b.build())
	}
	return out
}

// CatalogueNames lists the built-in names in catalogue order.
func CatalogueNames() []string {
	names := make([]string, 0, len(catalogue))
	for _, b := range catalogue {
		names = append(names, b.name)
	}
	return names
}

// Lookup returns a fresh instance of the named built-in acceptor.
func Lookup(name string) (*VPA, error) {
	for _, b := range catalogue {
		if b.name == name {
			return b.build(), nil
		}
	}
	known := CatalogueNames()
	sort.Strings(known)
	return nil, fmt.Errorf("unknown built-in model %q (known: %v)", name, known)
}

func mustVPA(name string, alphabet Alphabet, initial string, states ...VPAState) *VPA {
	v, err := NewVPA(name, alphabet, initial, states)
	if err != nil {
		panic(err)
	}
	return v
}

func calls(pairs ...string) map[string]CallTransition {
	out := make(map[string]CallTransition, len(pairs)/3)
	for i := 0; i+2 < len(pairs); i += 3 {
		out[pairs[i]] = CallTransition{Target: pairs[i+1], Push: pairs[i+2]}
	}
	return out
}

func returns(symbol string, transitions ...ReturnTransition) map[string][]ReturnTransition {
	return map[string][]ReturnTransition{symbol: transitions}
}

func pop(top, target string) ReturnTransition {
	return ReturnTransition{Pop: top, Target: target}
}

// balancedParentheses accepts well-nested words over ( and ).
func balancedParentheses() *VPA {
	return mustVPA("balanced_parentheses",
		Alphabet{Call: []string{"("}, Return: []string{")"}},
		"q0",
		VPAState{ID: "q0", Accepting: true, Call: calls("(", "q0", "p"), Return: returns(")", pop("p", "q0"))},
	)
}

// dyckTwo accepts well-nested words over two bracket kinds.
func dyckTwo() *VPA {
	return mustVPA("dyck_two",
		Alphabet{Call: []string{"(", "["}, Return: []string{")", "]"}},
		"q0",
		VPAState{
			ID:        "q0",
			Accepting: true,
			Call:      calls("(", "q0", "round", "[", "q0", "square"),
			Return: map[string][]ReturnTransition{
				")": {pop("round", "q0")},
				"]": {pop("square", "q0")},
			},
		},
	)
}

// anbn accepts a^n b^n for n >= 0.
func anbn() *VPA {
	return mustVPA("anbn",
		Alphabet{Call: []string{"a"}, Return: []string{"b"}},
		"q0",
		VPAState{ID: "q0", Accepting: true, Call: calls("a", "q0", "A"), Return: returns("b", pop("A", "q1"))},
		VPAState{ID: "q1", Accepting: true, Return: returns("b", pop("A", "q1"))},
	)
}

// anbnMarker accepts a^n c b^n for n >= 0.
func anbnMarker() *VPA {
	return mustVPA("anbn_marker",
		Alphabet{Internal: []string{"c"}, Call: []string{"a"}, Return: []string{"b"}},
		"q0",
		VPAState{ID: "q0", Call: calls("a", "q0", "A"), Internal: map[string]string{"c": "q1"}},
		VPAState{ID: "q1", Accepting: true, Return: returns("b", pop("A", "q1"))},
	)
}

// balancedWithMarker accepts balanced words containing at least one x.
func balancedWithMarker() *VPA {
	return mustVPA("balanced_with_marker",
		Alphabet{Internal: []string{"x"}, Call: []string{"("}, Return: []string{")"}},
		"q0",
		VPAState{
			ID:       "q0",
			Internal: map[string]string{"x": "q1"},
			Call:     calls("(", "q0", "p"),
			Return:   returns(")", pop("p", "q0")),
		},
		VPAState{
			ID:        "q1",
			Accepting: true,
			Internal:  map[string]string{"x": "q1"},
			Call:      calls("(", "q1", "p"),
			Return:    returns(")", pop("p", "q1")),
		},
	)
}

// evenPairs accepts balanced words with an even number of bracket pairs.
func evenPairs() *VPA {
	return mustVPA("even_pairs",
		Alphabet{Call: []string{"("}, Return: []string{")"}},
		"even",
		VPAState{ID: "even", Accepting: true, Call: calls("(", "odd", "p"), Return: returns(")", pop("p", "even"))},
		VPAState{ID: "odd", Call: calls("(", "even", "p"), Return: returns(")", pop("p", "odd"))},
	)
}

// xmlTags accepts properly matched a/b tags with text in between.
func xmlTags() *VPA {
	return mustVPA("xml_tags",
		Alphabet{Internal: []string{"t"}, Call: []string{"<a", "<b"}, Return: []string{"a>", "b>"}},
		"q0",
		VPAState{
			ID:        "q0",
			Accepting: true,
			Internal:  map[string]string{"t": "q0"},
			Call:      calls("<a", "q0", "A", "<b", "q0", "B"),
			Return: map[string][]ReturnTransition{
				"a>": {pop("A", "q0")},
				"b>": {pop("B", "q0")},
			},
		},
	)
}

// nonemptyProcedures accepts call/ret nestings where every frame, including the
// outermost, executes at least one op. The pushed symbol remembers the caller's progress.
func nonemptyProcedures() *VPA {
	return mustVPA("nonempty_procedures",
		Alphabet{Internal: []string{"op"}, Call: []string{"call"}, Return: []string{"ret"}},
		"empty",
		VPAState{
			ID:       "empty",
			Internal: map[string]string{"op": "busy"},
			Call:     calls("call", "empty", "from_empty"),
		},
		VPAState{
			ID:        "busy",
			Accepting: true,
			Internal:  map[string]string{"op": "busy"},
			Call:      calls("call", "empty", "from_busy"),
			Return:    returns("ret", pop("from_empty", "empty"), pop("from_busy", "busy")),
		},
	)
}

// boundedDepthTwo accepts balanced words whose nesting depth never exceeds two.
func boundedDepthTwo() *VPA {
	return mustVPA("bounded_depth_two",
		Alphabet{Internal: []string{"x"}, Call: []string{"("}, Return: []string{")"}},
		"d0",
		VPAState{ID: "d0", Accepting: true, Internal: map[string]string{"x": "d0"}, Call: calls("(", "d1", "p0")},
		VPAState{
			ID:       "d1",
			Internal: map[string]string{"x": "d1"},
			Call:     calls("(", "d2", "p1"),
			Return:   returns(")", pop("p0", "d0")),
		},
		VPAState{ID: "d2", Internal: map[string]string{"x": "d2"}, Return: returns(")", pop("p1", "d1"))},
	)
}

// returnHeavy accepts words where unmatched returns may precede a balanced suffix,
// exercising returns on the empty stack.
func returnHeavy() *VPA {
	return mustVPA("return_heavy",
		Alphabet{Internal: []string{"x"}, Call: []string{"("}, Return: []string{")"}},
		"pre",
		VPAState{
			ID:       "pre",
			Internal: map[string]string{"x": "body"},
			Call:     calls("(", "body", "p"),
			Return:   returns(")", pop(EmptyStack, "pre")),
		},
		VPAState{
			ID:        "body",
			Accepting: true,
			Internal:  map[string]string{"x": "body"},
			Call:      calls("(", "body", "p"),
			Return:    returns(")", pop("p", "body")),
		},
	)
}
