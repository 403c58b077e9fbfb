package duckdb_test

import (
	"errors"
	"testing"
	"time"

	"learnbench/internal/compare"
	"learnbench/internal/duckdb"
	"learnbench/internal/metrics"
	"learnbench/internal/runner"
	"learnbench/internal/trace"
)

func sampleResults(runID string) runner.Results {
	reason := "learner PAPNI: exploded"
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return runner.Results{
		RunID:      runID,
		Settings:   runner.RunSettings{Seed: 7, Workers: 2, OnFailure: runner.FailContinue, DFALabel: "RPNI", VPALabel: "PAPNI"},
		StartedAt:  started,
		FinishedAt: started.Add(time.Minute),
		Experiments: []runner.ExperimentResult{
			{
				Index:  1,
				Name:   "anbn",
				Status: runner.StatusPass,
				Comparison: &compare.ComparisonResult{
					DFALabel:  "RPNI",
					VPALabel:  "PAPNI",
					DFASize:   3,
					VPASize:   2,
					DFA:       metrics.MetricTriple{Precision: 0.5, Recall: 1, F1: 2.0 / 3.0},
					VPA:       metrics.MetricTriple{Precision: 1, Recall: 1, F1: 1},
					DFACounts: metrics.ConfusionCounts{TruePositives: 1, FalsePositives: 1},
					VPACounts: metrics.ConfusionCounts{TruePositives: 1},
					Learning:  trace.Balance{Positive: 1, Negative: 1},
					Test:      trace.Balance{Positive: 1, Negative: 1},
				},
				WallTimeSeconds: 0.25,
			},
			{Index: 2, Name: "dyck_two", Status: runner.StatusFail, FailureReason: &reason, WallTimeSeconds: 0.5},
		},
		Summary: runner.RunSummary{ExperimentsTotal: 2, ExperimentsPassed: 1, ExperimentsFailed: 1},
	}
}

// TestIngestRunStoresExperimentsAndScores verifies rows land in every table.
func TestIngestRunStoresExperimentsAndScores(t *testing.T) {
	db, ctx := openTestDB(t)
	if err := duckdb.IngestRun(ctx, db, sampleResults("run-a")); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM runs"); got != 1 {
		t.Fatalf("runs: got %d", got)
	}
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM experiments WHERE run_id = ?", "run-a"); got != 2 {
		t.Fatalf("experiments: got %d", got)
	}
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM experiments WHERE failure_reason IS NOT NULL"); got != 1 {
		t.Fatalf("failed experiments: got %d", got)
	}
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM scores"); got != 2 {
		t.Fatalf("scores: got %d", got)
	}

	scores, err := duckdb.QueryScores(ctx, db, "run-a")
	if err != nil {
		t.Fatalf("query scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	dfa, vpa := scores[0], scores[1]
	if dfa.Kind != "dfa" || dfa.Label != "RPNI" || dfa.GroundTruth != "anbn" || dfa.ModelSize != 3 || dfa.FalsePositives != 1 || dfa.Precision != 0.5 {
		t.Fatalf("unexpected dfa score: %+v", dfa)
	}
	if vpa.Kind != "vpa" || vpa.Label != "PAPNI" || vpa.F1 != 1 || vpa.Position != 1 {
		t.Fatalf("unexpected vpa score: %+v", vpa)
	}
}

// TestIngestRunDeduplicatesDimensions verifies learners and ground truths are shared across runs.
func TestIngestRunDeduplicatesDimensions(t *testing.T) {
	db, ctx := openTestDB(t)
	for _, id := range []string{"run-a", "run-b"} {
		if err := duckdb.IngestRun(ctx, db, sampleResults(id)); err != nil {
			t.Fatalf("ingest %s: %v", id, err)
		}
	}
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM learners"); got != 2 {
		t.Fatalf("learners: got %d", got)
	}
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM ground_truths"); got != 2 {
		t.Fatalf("ground truths: got %d", got)
	}
	ids, err := duckdb.RunIDs(ctx, db)
	if err != nil {
		t.Fatalf("run ids: %v", err)
	}
	if len(ids) != 2 || ids[0] != "run-b" {
		t.Fatalf("unexpected run ids: %v", ids)
	}
}

// TestIngestRunRejectsDuplicateRun verifies a run id is stored once.
func TestIngestRunRejectsDuplicateRun(t *testing.T) {
	db, ctx := openTestDB(t)
	if err := duckdb.IngestRun(ctx, db, sampleResults("run-a")); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	err := duckdb.IngestRun(ctx, db, sampleResults("run-a"))
	if !errors.Is(err, duckdb.ErrRunExists) {
		t.Fatalf("expected ErrRunExists, got %v", err)
	}
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM experiments"); got != 2 {
		t.Fatalf("experiments: got %d", got)
	}
}

// TestUpsertHelpersIdempotent verifies upsert helpers deduplicate records by key.
func TestUpsertHelpersIdempotent(t *testing.T) {
	db, ctx := openTestDB(t)
	id1, key1, err := duckdb.UpsertLearner(ctx, db, "dfa", "RPNI")
	if err != nil {
		t.Fatalf("upsert learner: %v", err)
	}
	id2, key2, err := duckdb.UpsertLearner(ctx, db, "dfa", "RPNI")
	if err != nil {
		t.Fatalf("upsert learner again: %v", err)
	}
	if id1 != id2 || key1 != key2 {
		t.Fatalf("learner upsert not idempotent: %s/%s vs %s/%s", id1, key1, id2, key2)
	}
	if _, _, err := duckdb.UpsertLearner(ctx, db, "", "RPNI"); err == nil {
		t.Fatalf("expected error for empty kind")
	}

	gt1, err := duckdb.UpsertGroundTruth(ctx, db, "anbn")
	if err != nil {
		t.Fatalf("upsert ground truth: %v", err)
	}
	gt2, err := duckdb.UpsertGroundTruth(ctx, db, "anbn")
	if err != nil {
		t.Fatalf("upsert ground truth again: %v", err)
	}
	if gt1 != gt2 {
		t.Fatalf("ground truth ids mismatch: %s vs %s", gt1, gt2)
	}
}

// TestCanonicalJSONStable verifies canonical JSON output ignores map key order.
func TestCanonicalJSONStable(t *testing.T) {
	left, err := duckdb.CanonicalJSON(map[string]any{"b": 1, "a": []any{"x"}})
	if err != nil {
		t.Fatalf("canonical a: %v", err)
	}
	right, err := duckdb.CanonicalJSON(map[string]any{"a": []any{"x"}, "b": 1})
	if err != nil {
		t.Fatalf("canonical b: %v", err)
	}
	if string(left) != string(right) || string(left) != `{"a":["x"],"b":1}` {
		t.Fatalf("canonical json mismatch: %s vs %s", left, right)
	}
	keyA, _ := duckdb.LearnerKey("dfa", "RPNI")
	keyB, _ := duckdb.LearnerKey("vpa", "RPNI")
	if keyA == keyB || len(keyA) != 64 {
		t.Fatalf("unexpected learner keys: %s %s", keyA, keyB)
	}
}
