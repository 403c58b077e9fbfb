package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"learnbench/internal/learner"
	"learnbench/internal/runner"
)

// ScoreRow is one learner's outcome on one ground truth, flattened for CSV export.
type ScoreRow struct {
	RunID          string  `csv:"run_id"`
	Index          int     `csv:"gt"`
	GroundTruth    string  `csv:"ground_truth"`
	Status         string  `csv:"status"`
	Kind           string  `csv:"kind"`
	Learner        string  `csv:"learner"`
	LearningPos    int     `csv:"learning_positive"`
	LearningNeg    int     `csv:"learning_negative"`
	TestPos        int     `csv:"test_positive"`
	TestNeg        int     `csv:"test_negative"`
	Size           int     `csv:"size"`
	TruePositives  int     `csv:"tp"`
	FalsePositives int     `csv:"fp"`
	FalseNegatives int     `csv:"fn"`
	Precision      float64 `csv:"precision"`
	Recall         float64 `csv:"recall"`
	F1             float64 `csv:"f1"`
	FailureReason  string  `csv:"failure_reason"`
}

// ScoreRows flattens a run into two rows per passed experiment and one per failed or skipped one.
func ScoreRows(results runner.Results) []ScoreRow {
	rows := make([]ScoreRow, 0, 2*len(results.Experiments))
	for _, experiment := range results.Experiments {
		base := ScoreRow{
			RunID:       results.RunID,
			Index:       experiment.Index,
			GroundTruth: experiment.Name,
			Status:      experiment.Status,
		}
		if experiment.FailureReason != nil {
			base.FailureReason = *experiment.FailureReason
		}
		c := experiment.Comparison
		if c == nil {
			rows = append(rows, base)
			continue
		}
		base.LearningPos, base.LearningNeg = c.Learning.Positive, c.Learning.Negative
		base.TestPos, base.TestNeg = c.Test.Positive, c.Test.Negative

		dfa := base
		dfa.Kind, dfa.Learner, dfa.Size = string(learner.KindDFA), c.DFALabel, c.DFASize
		dfa.TruePositives, dfa.FalsePositives, dfa.FalseNegatives = c.DFACounts.TruePositives, c.DFACounts.FalsePositives, c.DFACounts.FalseNegatives
		dfa.Precision, dfa.Recall, dfa.F1 = c.DFA.Precision, c.DFA.Recall, c.DFA.F1

		vpa := base
		vpa.Kind, vpa.Learner, vpa.Size = string(learner.KindVPA), c.VPALabel, c.VPASize
		vpa.TruePositives, vpa.FalsePositives, vpa.FalseNegatives = c.VPACounts.TruePositives, c.VPACounts.FalsePositives, c.VPACounts.FalseNegatives
		vpa.Precision, vpa.Recall, vpa.F1 = c.VPA.Precision, c.VPA.Recall, c.VPA.F1

		rows = append(rows, dfa, vpa)
	}
	return rows
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []ScoreRow) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
