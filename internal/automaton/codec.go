package automaton

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Document types understood by Decode.
const (
	TypeDFA = "dfa"
	TypeVPA = "vpa"
)

// ErrUnsupportedType indicates a document whose type is neither dfa nor vpa.
var ErrUnsupportedType = errors.New("unsupported automaton type")

type document struct {
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	Alphabet Alphabet        `json:"alphabet"`
	Initial  string          `json:"initial"`
	States   json.RawMessage `json:"states"`
}

// Decode parses a JSON automaton document.
func Decode(data []byte) (Automaton, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode automaton: %w", err)
	}
	switch doc.Type {
	case TypeDFA:
		var states []DFAState
		if err := json.Unmarshal(doc.States, &states); err != nil {
			return nil, fmt.Errorf("decode dfa states: %w", err)
		}
		return NewDFA(doc.Name, doc.Alphabet, doc.Initial, states)
	case TypeVPA:
		var states []VPAState
		if err := json.Unmarshal(doc.States, &states); err != nil {
			return nil, fmt.Errorf("decode vpa states: %w", err)
		}
		return NewVPA(doc.Name, doc.Alphabet, doc.Initial, states)
	default:
		return nil, fmt.Errorf("decode automaton: %w %q", ErrUnsupportedType, doc.Type)
	}
}

// Encode renders a reference automaton as a JSON document.
func Encode(a Automaton) ([]byte, error) {
	var (
		doc    document
		states interface{}
	)
	switch typed := a.(type) {
	case *DFA:
		doc = document{Type: TypeDFA, Name: typed.Name, Alphabet: typed.Alphabet, Initial: typed.Initial}
		states = typed.States
	case *VPA:
		doc = document{Type: TypeVPA, Name: typed.Name, Alphabet: typed.Alphabet, Initial: typed.Initial}
		states = typed.States
	default:
		return nil, fmt.Errorf("encode automaton: %w %T", ErrUnsupportedType, a)
	}
	raw, err := json.Marshal(states)
	if err != nil {
		return nil, fmt.Errorf("encode states: %w", err)
	}
	doc.States = raw
	return json.MarshalIndent(doc, "", "  ")
}
