package duckdbtesting

import (
	"database/sql"
	"testing"
	"time"

	"learnbench/internal/duckdb"
	"learnbench/internal/testutil"
)

const (
	defaultTimeout = 5 * time.Second
)

// Open opens a DuckDB store with the schema applied and closes it when the test ends.
func Open(t testing.TB, dsn string) *sql.DB {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	conn, err := duckdb.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}
