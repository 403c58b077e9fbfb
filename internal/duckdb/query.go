package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Score is one learner's result for one experiment as stored in v_scores.
type Score struct {
	RunID          string
	Position       int
	GroundTruth    string
	Kind           string
	Label          string
	ModelSize      int
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
}

// QueryScores returns the stored scores of runID in experiment order, DFA first.
func QueryScores(ctx context.Context, db *sql.DB, runID string) ([]Score, error) {
	if db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	rows, err := db.QueryContext(
		ctx,
		`SELECT run_id, ordinal, ground_truth, kind, label, model_size,
		        true_positives, false_positives, false_negatives,
		        precision_score, recall_score, f1_score
		 FROM v_scores
		 WHERE run_id = ?
		 ORDER BY ordinal, kind`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var s Score
		if err := rows.Scan(
			&s.RunID, &s.Position, &s.GroundTruth, &s.Kind, &s.Label, &s.ModelSize,
			&s.TruePositives, &s.FalsePositives, &s.FalseNegatives,
			&s.Precision, &s.Recall, &s.F1,
		); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return scores, nil
}

// RunIDs lists stored runs, most recent first.
func RunIDs(ctx context.Context, db *sql.DB) ([]string, error) {
	if db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	rows, err := db.QueryContext(ctx, "SELECT run_id FROM runs ORDER BY started_at DESC, run_id DESC")
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
