package automaton

import (
	"fmt"
	"strings"
)

// SymbolKind classifies a symbol of a visibly-pushdown alphabet.
type SymbolKind int

const (
	// KindInternal symbols leave the stack untouched.
	KindInternal SymbolKind = iota
	// KindCall symbols push onto the stack.
	KindCall
	// KindReturn symbols pop from the stack.
	KindReturn
)

// Alphabet is a structured input alphabet. A plain DFA alphabet only uses Internal.
type Alphabet struct {
	Internal []string `json:"internal"`
	Call     []string `json:"call,omitempty"`
	Return   []string `json:"return,omitempty"`
}

// Plain builds an alphabet with internal symbols only.
func Plain(symbols ...string) Alphabet {
	return Alphabet{Internal: append([]string(nil), symbols...)}
}

// Merged flattens the alphabet into internal, call, return order.
func (a Alphabet) Merged() []string {
	out := make([]string, 0, len(a.Internal)+len(a.Call)+len(a.Return))
	out = append(out, a.Internal...)
	out = append(out, a.Call...)
	out = append(out, a.Return...)
	return out
}

// IsPushdown reports whether the alphabet has call or return symbols.
func (a Alphabet) IsPushdown() bool {
	return len(a.Call) > 0 || len(a.Return) > 0
}

// Kind returns the class of symbol. Unknown symbols are treated as internal.
func (a Alphabet) Kind(symbol string) SymbolKind {
	for _, s := range a.Call {
		if s == symbol {
			return KindCall
		}
	}
	for _, s := range a.Return {
		if s == symbol {
			return KindReturn
		}
	}
	return KindInternal
}

// Validate checks that the three subsets are disjoint and free of empty symbols.
func (a Alphabet) Validate() error {
	seen := map[string]string{}
	var problems []string
	check := func(kind string, symbols []string) {
		for _, s := range symbols {
			if s == "" {
				problems = append(problems, fmt.Sprintf("empty %s symbol", kind))
				continue
			}
			if prev, ok := seen[s]; ok {
				problems = append(problems, fmt.Sprintf("symbol %q is both %s and %s", s, prev, kind))
				continue
			}
			seen[s] = kind
		}
	}
	check("internal", a.Internal)
	check("call", a.Call)
	check("return", a.Return)
	if len(problems) > 0 {
		return fmt.Errorf("invalid alphabet: %s", strings.Join(problems, "; "))
	}
	return nil
}
