package duckdb_test

import (
	"testing"

	"learnbench/internal/duckdb"
)

// TestSchemaObjectsExist verifies core tables and views are created.
func TestSchemaObjectsExist(t *testing.T) {
	db, ctx := openTestDB(t)
	for _, table := range []string{"runs", "ground_truths", "learners", "experiments", "scores"} {
		count := queryInt(t, ctx, db, "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?", table)
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	viewCount := queryInt(t, ctx, db, "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'v_scores' AND table_type = 'VIEW'")
	if viewCount != 1 {
		t.Fatalf("expected view v_scores to exist")
	}
}

// TestEnsureSchemaIdempotent verifies the DDL can be applied twice.
func TestEnsureSchemaIdempotent(t *testing.T) {
	db, _ := openTestDB(t)
	if err := duckdb.EnsureSchema(db); err != nil {
		t.Fatalf("reapply schema: %v", err)
	}
	if err := duckdb.EnsureSchema(nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}
