package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"learnbench/internal/duckdb"
	"learnbench/internal/report"
)

// printStoredScores lists the per-learner scores of the selected runs held in a DuckDB file.
// With no refs every stored run is listed, oldest first.
func printStoredScores(ctx context.Context, path string, refs []string, stdout io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open duckdb: %w", err)
	}
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	stored, err := duckdb.RunIDs(ctx, db)
	if err != nil {
		return err
	}
	ids, err := selectStoredRuns(stored, refs)
	if err != nil {
		return fmt.Errorf("%w (%s)", err, path)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tGT\tGROUND TRUTH\tKIND\tLEARNER\tSIZE\tPRECISION\tRECALL\tF1")
	for _, id := range ids {
		scores, err := duckdb.QueryScores(ctx, db, id)
		if err != nil {
			return err
		}
		for _, s := range scores {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%d\t%.4f\t%.4f\t%.4f\n",
				s.RunID, s.Position, s.GroundTruth, s.Kind, s.Label, s.ModelSize,
				s.Precision, s.Recall, s.F1)
		}
	}
	return tw.Flush()
}

// selectStoredRuns resolves run refs against stored ids, which arrive newest first.
func selectStoredRuns(stored, refs []string) ([]string, error) {
	if len(stored) == 0 {
		return nil, report.ErrNoRuns
	}
	if len(refs) == 0 {
		ids := slices.Clone(stored)
		slices.Reverse(ids)
		return ids, nil
	}
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == report.RefLatest {
			ids = append(ids, stored[0])
			continue
		}
		if !slices.Contains(stored, ref) {
			return nil, fmt.Errorf("run %s not stored", ref)
		}
		ids = append(ids, ref)
	}
	return ids, nil
}
