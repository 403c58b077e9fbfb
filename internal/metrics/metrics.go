// Package metrics scores a learned acceptor against a held-out dataset.
package metrics

import (
	"fmt"
	"strconv"

	"learnbench/internal/automaton"
	"learnbench/internal/trace"
)

// ConfusionCounts accumulates classification outcomes. True negatives are not tracked.
type ConfusionCounts struct {
	TruePositives  int `json:"true_positives" csv:"tp"`
	FalsePositives int `json:"false_positives" csv:"fp"`
	FalseNegatives int `json:"false_negatives" csv:"fn"`
}

// Add returns the element-wise sum of c and other.
func (c ConfusionCounts) Add(other ConfusionCounts) ConfusionCounts {
	return ConfusionCounts{
		TruePositives:  c.TruePositives + other.TruePositives,
		FalsePositives: c.FalsePositives + other.FalsePositives,
		FalseNegatives: c.FalseNegatives + other.FalseNegatives,
	}
}

// MetricTriple holds precision, recall and F1, each in [0, 1].
type MetricTriple struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// String renders the triple as "(p, r, f)" with the shortest round-trip form of each value.
func (m MetricTriple) String() string {
	return fmt.Sprintf("(%s, %s, %s)", formatFloat(m.Precision), formatFloat(m.Recall), formatFloat(m.F1))
}

// formatFloat always keeps a fractional part, so 1 prints as "1.0".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'n', 'I':
			return s
		}
	}
	return s + ".0"
}

// Evaluate runs every test trace on model and counts true positives, false positives
// and false negatives. The model's verdict for a trace is its output after the last symbol.
func Evaluate(model automaton.Acceptor, test trace.Dataset) ConfusionCounts {
	var c ConfusionCounts
	for _, t := range test {
		predicted := automaton.Verdict(model, t.Input)
		switch {
		case predicted && t.Accepted:
			c.TruePositives++
		case predicted && !t.Accepted:
			c.FalsePositives++
		case !predicted && t.Accepted:
			c.FalseNegatives++
		}
	}
	return c
}

// Derive computes precision, recall and F1. Each ratio with a zero denominator is 0.
func Derive(c ConfusionCounts) MetricTriple {
	precision := ratio(c.TruePositives, c.TruePositives+c.FalsePositives)
	recall := ratio(c.TruePositives, c.TruePositives+c.FalseNegatives)
	return MetricTriple{Precision: precision, Recall: recall, F1: F1(precision, recall)}
}

// F1 is the harmonic mean of precision and recall, or 0 when both are 0.
func F1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// Score evaluates model on test and derives its metric triple.
func Score(model automaton.Acceptor, test trace.Dataset) (ConfusionCounts, MetricTriple) {
	counts := Evaluate(model, test)
	return counts, Derive(counts)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
