package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// execQuerier is satisfied by *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// LearnerKey returns the fingerprint identifying a learner by kind and label.
func LearnerKey(kind, label string) (string, error) {
	return FingerprintJSON(map[string]any{"kind": kind, "label": label})
}

// UpsertLearner inserts a learner once per (kind, label) and returns its id and key.
func UpsertLearner(ctx context.Context, db *sql.DB, kind, label string) (string, string, error) {
	if db == nil {
		return "", "", errors.New("duckdb: db is nil")
	}
	return upsertLearner(ctx, db, kind, label)
}

// UpsertGroundTruth inserts a ground truth once per name and returns its id.
func UpsertGroundTruth(ctx context.Context, db *sql.DB, name string) (string, error) {
	if db == nil {
		return "", errors.New("duckdb: db is nil")
	}
	return upsertGroundTruth(ctx, db, name)
}

func upsertLearner(ctx context.Context, q execQuerier, kind, label string) (string, string, error) {
	if strings.TrimSpace(kind) == "" || strings.TrimSpace(label) == "" {
		return "", "", errors.New("duckdb: learner kind and label are required")
	}
	key, err := LearnerKey(kind, label)
	if err != nil {
		return "", "", err
	}
	if _, err := q.ExecContext(
		ctx,
		`INSERT INTO learners (learner_id, learner_key, kind, label, created_at)
		 VALUES (?, ?, ?, ?, now())
		 ON CONFLICT (learner_key) DO NOTHING`,
		uuid.NewString(),
		key,
		kind,
		label,
	); err != nil {
		return "", "", fmt.Errorf("upsert learner: %w", err)
	}
	id, err := lookupID(ctx, q, "learners", "learner_id", "learner_key", key)
	if err != nil {
		return "", "", fmt.Errorf("lookup learner id: %w", err)
	}
	return id, key, nil
}

func upsertGroundTruth(ctx context.Context, q execQuerier, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("duckdb: ground truth name is required")
	}
	if _, err := q.ExecContext(
		ctx,
		`INSERT INTO ground_truths (ground_truth_id, name, created_at)
		 VALUES (?, ?, now())
		 ON CONFLICT (name) DO NOTHING`,
		uuid.NewString(),
		name,
	); err != nil {
		return "", fmt.Errorf("upsert ground truth: %w", err)
	}
	id, err := lookupID(ctx, q, "ground_truths", "ground_truth_id", "name", name)
	if err != nil {
		return "", fmt.Errorf("lookup ground truth id: %w", err)
	}
	return id, nil
}

// lookupID fetches a single ID column value for a row keyed by keyColumn.
func lookupID(ctx context.Context, q execQuerier, table, idColumn, keyColumn, key string) (string, error) {
	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s WHERE %s = ?", idColumn, table, keyColumn)
	var id string
	if err := q.QueryRowContext(ctx, query, key).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// nullableString converts an optional string pointer into a SQL argument.
func nullableString(value *string) any {
	if value == nil || *value == "" {
		return nil
	}
	return *value
}
