package runner

import (
	"fmt"

	"learnbench/internal/compare"
)

// FormatLine renders the summary line of the ground truth at 1-based position.
func FormatLine(position int, r compare.ComparisonResult) string {
	return fmt.Sprintf("GT %d:\t Learning (%d/%d),\t Test (%d/%d),\t%s: size: %d, prec/rec/F1: %s, \t %s size: %d, prec/rec/F1: %s",
		position,
		r.Learning.Positive, r.Learning.Negative,
		r.Test.Positive, r.Test.Negative,
		labelOr(r.DFALabel, compare.DefaultDFALabel), r.DFASize, r.DFA,
		labelOr(r.VPALabel, compare.DefaultVPALabel), r.VPASize, r.VPA,
	)
}

// FormatFailure renders the line printed for a failed experiment.
func FormatFailure(position int, err error) string {
	return fmt.Sprintf("GT %d: failed: %v", position, err)
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
