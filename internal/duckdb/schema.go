package duckdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
)

// schemaDDL holds the DuckDB schema definition.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the schema DDL used for initializing DuckDB databases.
func SchemaDDL() string {
	return schemaDDL
}

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	_, err := db.Exec(schemaDDL)
	return err
}

// Open connects to the DuckDB file at dsn (":memory:" for a transient store) and applies the schema.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
