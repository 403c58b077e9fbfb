package trace

import (
	"sort"
	"strings"
)

// Trace is an input sequence paired with its acceptance label.
type Trace struct {
	Input    []string `json:"input"`
	Accepted bool     `json:"accepted"`
}

// New copies input so later changes to the caller's slice do not leak into the trace.
func New(input []string, accepted bool) Trace {
	owned := make([]string, len(input))
	copy(owned, input)
	return Trace{Input: owned, Accepted: accepted}
}

// Len returns the length of the input sequence.
func (t Trace) Len() int {
	return len(t.Input)
}

// Key returns a stable identity for the input sequence.
func (t Trace) Key() string {
	return strings.Join(t.Input, "\x1f")
}

// Balance counts positive and negative labels.
type Balance struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// Total returns the number of counted traces.
func (b Balance) Total() int {
	return b.Positive + b.Negative
}

// Dataset is an ordered collection of traces.
type Dataset []Trace

// Balance returns the positive/negative label counts.
func (d Dataset) Balance() Balance {
	var b Balance
	for _, t := range d {
		if t.Accepted {
			b.Positive++
		} else {
			b.Negative++
		}
	}
	return b
}

// Positives returns the number of accepted traces.
func (d Dataset) Positives() int {
	return d.Balance().Positive
}

// SortedByLength returns a copy ordered shortest first; equal lengths keep their order.
func (d Dataset) SortedByLength() Dataset {
	out := make(Dataset, len(d))
	copy(out, d)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Len() < out[j].Len()
	})
	return out
}
