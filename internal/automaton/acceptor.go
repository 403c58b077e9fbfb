package automaton

// Acceptor is the execution capability shared by ground truths and learned models.
// Execute continues from the current configuration and returns one verdict per symbol.
type Acceptor interface {
	Reset()
	Execute(seq []string) []bool
}

// GroundTruth is an acceptor that also exposes its input alphabet.
type GroundTruth interface {
	Acceptor
	InputAlphabet() Alphabet
}

// Automaton is the concrete form of the reference DFA and VPA.
type Automaton interface {
	GroundTruth
	Size() int
	AcceptsEmpty() bool
	Label() string
}

// emptyAcceptor is implemented by acceptors that can report their verdict on the empty word.
type emptyAcceptor interface {
	AcceptsEmpty() bool
}

// Verdict resets a, runs seq and returns the final output.
// The empty sequence yields the initial acceptance when a can report it, otherwise false.
func Verdict(a Acceptor, seq []string) bool {
	a.Reset()
	out := a.Execute(seq)
	if len(out) == 0 {
		if e, ok := a.(emptyAcceptor); ok {
			return e.AcceptsEmpty()
		}
		return false
	}
	return out[len(out)-1]
}
