package automaton

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

func evenA(t *testing.T) *DFA {
	t.Helper()
	d, err := NewDFA("even_a", Plain("a", "b"), "even", []DFAState{
		{ID: "even", Accepting: true, Transitions: map[string]string{"a": "odd", "b": "even"}},
		{ID: "odd", Transitions: map[string]string{"a": "even"}},
	})
	require.NoError(t, err)
	return d
}

func TestAlphabetMergedOrder(t *testing.T) {
	a := Alphabet{Internal: []string{"x"}, Call: []string{"("}, Return: []string{")"}}
	assert.Equal(t, []string{"x", "(", ")"}, a.Merged())
	assert.True(t, a.IsPushdown())
	assert.False(t, Plain("a").IsPushdown())
	assert.Equal(t, KindCall, a.Kind("("))
	assert.Equal(t, KindReturn, a.Kind(")"))
	assert.Equal(t, KindInternal, a.Kind("zzz"))
}

func TestAlphabetValidateRejectsOverlap(t *testing.T) {
	err := Alphabet{Internal: []string{"a"}, Call: []string{"a"}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"a" is both internal and call`)
}

func TestDFAExecute(t *testing.T) {
	d := evenA(t)
	assert.Equal(t, []bool{false, true, true}, d.Execute(word("a a b")))
	d.Reset()
	assert.True(t, Verdict(d, nil), "empty word follows initial acceptance")
	assert.False(t, Verdict(d, word("a b")), "missing transition rejects")
	assert.False(t, Verdict(d, word("a b a")), "dead configuration persists until reset")
	assert.True(t, Verdict(d, word("b b")))
}

func TestDFAUnknownTarget(t *testing.T) {
	_, err := NewDFA("bad", Plain("a"), "q0", []DFAState{{ID: "q0", Transitions: map[string]string{"a": "q9"}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownState))
}

func TestDFACompleteAddsSink(t *testing.T) {
	d := evenA(t)
	completed, err := d.Complete(Plain("a", "b", "c"))
	require.NoError(t, err)
	require.Equal(t, 3, completed.Size())
	assert.Equal(t, 2, d.Size(), "receiver is untouched")

	sink := completed.States[2]
	assert.Equal(t, SinkStateID, sink.ID)
	assert.False(t, sink.Accepting)
	for _, state := range completed.States {
		for _, symbol := range []string{"a", "b", "c"} {
			_, ok := state.Transitions[symbol]
			assert.Truef(t, ok, "state %s lacks %s", state.ID, symbol)
		}
	}
	assert.False(t, Verdict(completed, word("a b a")))
	assert.True(t, Verdict(completed, word("b a a")))
}

func TestDFACompleteAlreadyComplete(t *testing.T) {
	d, err := NewDFA("all", Plain("a"), "q0", []DFAState{{ID: "q0", Accepting: true, Transitions: map[string]string{"a": "q0"}}})
	require.NoError(t, err)
	completed, err := d.Complete(Plain("a"))
	require.NoError(t, err)
	assert.Same(t, d, completed)
}

func TestDFACompleteAvoidsSinkCollision(t *testing.T) {
	d, err := NewDFA("collide", Plain("a", "b"), SinkStateID, []DFAState{{ID: SinkStateID, Accepting: true, Transitions: map[string]string{"a": SinkStateID}}})
	require.NoError(t, err)
	completed, err := d.Complete(Plain("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, SinkStateID+"_1", completed.States[1].ID)
}

func TestBuiltinVerdicts(t *testing.T) {
	cases := []struct {
		model string
		input string
		want  bool
	}{
		{"balanced_parentheses", "", true},
		{"balanced_parentheses", "( ( ) )", true},
		{"balanced_parentheses", "( ) )", false},
		{"balanced_parentheses", "( (", false},
		{"dyck_two", "( [ ] )", true},
		{"dyck_two", "( [ ) ]", false},
		{"anbn", "a a b b", true},
		{"anbn", "a b a b", false},
		{"anbn_marker", "c", true},
		{"anbn_marker", "a c b", true},
		{"anbn_marker", "a b", false},
		{"balanced_with_marker", "( x )", true},
		{"balanced_with_marker", "( )", false},
		{"even_pairs", "( ) ( )", true},
		{"even_pairs", "( ( ) ) ( )", false},
		{"xml_tags", "<a t <b b> a>", true},
		{"xml_tags", "<a b>", false},
		{"nonempty_procedures", "op call op ret", true},
		{"nonempty_procedures", "op call ret", false},
		{"bounded_depth_two", "( ( x ) )", true},
		{"bounded_depth_two", "( ( ( ) ) )", false},
		{"return_heavy", ") ) x", true},
		{"return_heavy", ")", false},
	}
	for _, tc := range cases {
		v, err := Lookup(tc.model)
		require.NoError(t, err)
		assert.Equalf(t, tc.want, Verdict(v, word(tc.input)), "%s on %q", tc.model, tc.input)
	}
}

func TestCatalogueFreshInstances(t *testing.T) {
	first := Catalogue()
	second := Catalogue()
	require.Len(t, first, len(CatalogueNames()))
	first[0].Execute(word("( ("))
	assert.True(t, Verdict(second[0], nil))
	seen := map[string]bool{}
	for _, v := range first {
		assert.False(t, seen[v.Label()], "duplicate name %s", v.Label())
		seen[v.Label()] = true
		require.NoError(t, v.InputAlphabet().Validate())
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balanced_parentheses")
}

func TestCodecDecodesLearnerOutput(t *testing.T) {
	doc := []byte(`{
  "type": "dfa",
  "initial": "q0",
  "alphabet": {"internal": ["a"]},
  "states": [
    {"id": "q0", "accepting": false, "transitions": {"a": "q1"}},
    {"id": "q1", "accepting": true}
  ]
}`)
	a, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Size())
	assert.True(t, Verdict(a, word("a")))
	assert.False(t, Verdict(a, word("a a")))
}

func TestCodecPreservesVPABehaviour(t *testing.T) {
	original, err := Lookup("nonempty_procedures")
	require.NoError(t, err)
	data, err := Encode(original)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	for _, input := range []string{"op", "call op ret", "op call op ret op", "op call ret"} {
		assert.Equal(t, Verdict(original, word(input)), Verdict(decoded, word(input)), input)
	}
}

func TestCodecUnsupportedType(t *testing.T) {
	_, err := Decode([]byte(`{"type":"mealy","initial":"q0","states":[]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}
