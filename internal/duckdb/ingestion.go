package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"learnbench/internal/compare"
	"learnbench/internal/learner"
	"learnbench/internal/metrics"
	"learnbench/internal/runner"
)

// ErrRunExists is returned when a run id has already been ingested.
var ErrRunExists = errors.New("duckdb: run already stored")

// IngestRun stores a run with its experiments and per-learner scores in one transaction.
func IngestRun(ctx context.Context, db *sql.DB, results runner.Results) (err error) {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if results.RunID == "" {
		return errors.New("duckdb: run id is required")
	}
	var existing int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE run_id = ?", results.RunID).Scan(&existing); err != nil {
		return fmt.Errorf("check run: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("%w: %s", ErrRunExists, results.RunID)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = insertRun(ctx, tx, results); err != nil {
		return err
	}
	dfaID, _, err := upsertLearner(ctx, tx, string(learner.KindDFA), labelOr(results.Settings.DFALabel, compare.DefaultDFALabel))
	if err != nil {
		return err
	}
	vpaID, _, err := upsertLearner(ctx, tx, string(learner.KindVPA), labelOr(results.Settings.VPALabel, compare.DefaultVPALabel))
	if err != nil {
		return err
	}
	for _, experiment := range results.Experiments {
		if err = insertExperiment(ctx, tx, results.RunID, experiment, dfaID, vpaID); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest: %w", err)
	}
	return nil
}

func insertRun(ctx context.Context, tx *sql.Tx, results runner.Results) error {
	settings, err := CanonicalJSON(results.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	summary := results.Summary
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (
		  run_id, started_at, finished_at, seed, workers, on_failure, settings_key, settings,
		  experiments_total, experiments_passed, experiments_failed, experiments_skipped
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		results.RunID,
		results.StartedAt.UTC(),
		results.FinishedAt.UTC(),
		strconv.FormatUint(results.Settings.Seed, 10),
		results.Settings.Workers,
		string(results.Settings.OnFailure),
		fingerprintBytes(settings),
		string(settings),
		summary.ExperimentsTotal,
		summary.ExperimentsPassed,
		summary.ExperimentsFailed,
		summary.ExperimentsSkipped,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func insertExperiment(ctx context.Context, tx *sql.Tx, runID string, experiment runner.ExperimentResult, dfaID, vpaID string) error {
	groundTruthID, err := upsertGroundTruth(ctx, tx, experiment.Name)
	if err != nil {
		return err
	}
	experimentID := uuid.NewString()
	var learningPos, learningNeg, testPos, testNeg any
	if c := experiment.Comparison; c != nil {
		learningPos, learningNeg = c.Learning.Positive, c.Learning.Negative
		testPos, testNeg = c.Test.Positive, c.Test.Negative
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO experiments (
		  experiment_id, run_id, ordinal, ground_truth_id, status, failure_reason,
		  learning_positive, learning_negative, test_positive, test_negative, wall_time_seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		experimentID,
		runID,
		experiment.Index,
		groundTruthID,
		experiment.Status,
		nullableString(experiment.FailureReason),
		learningPos,
		learningNeg,
		testPos,
		testNeg,
		experiment.WallTimeSeconds,
	); err != nil {
		return fmt.Errorf("insert experiment %d: %w", experiment.Index, err)
	}
	c := experiment.Comparison
	if c == nil {
		return nil
	}
	if err := insertScore(ctx, tx, experimentID, dfaID, c.DFASize, c.DFACounts, c.DFA); err != nil {
		return fmt.Errorf("insert experiment %d: %w", experiment.Index, err)
	}
	if err := insertScore(ctx, tx, experimentID, vpaID, c.VPASize, c.VPACounts, c.VPA); err != nil {
		return fmt.Errorf("insert experiment %d: %w", experiment.Index, err)
	}
	return nil
}

func insertScore(ctx context.Context, tx *sql.Tx, experimentID, learnerID string, size int, counts metrics.ConfusionCounts, triple metrics.MetricTriple) error {
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO scores (
		  experiment_id, learner_id, model_size, true_positives, false_positives, false_negatives,
		  precision_score, recall_score, f1_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		experimentID,
		learnerID,
		size,
		counts.TruePositives,
		counts.FalsePositives,
		counts.FalseNegatives,
		triple.Precision,
		triple.Recall,
		triple.F1,
	); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
