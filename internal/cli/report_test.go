package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runBaseline runs the baseline config once under runID.
func runBaseline(t *testing.T, configPath, runID string) {
	t.Helper()
	stubRunSeams(t, runID)
	var out, errOut bytes.Buffer
	if code := Run([]string{"run", "--config", configPath, "--ui", "plain"}, &out, &errOut); code != ExitOK {
		t.Fatalf("run %s failed (%d): %s", runID, code, errOut.String())
	}
}

func TestReportAggregatesStoredRuns(t *testing.T) {
	root, configPath := writeConfig(t, baselineConfig)
	runBaseline(t, configPath, "20260301T120000Z-aaaaaaaaaaaa")
	runBaseline(t, configPath, "20260302T120000Z-bbbbbbbbbbbb")

	csvPath := filepath.Join(root, "all.csv")
	var out, errOut bytes.Buffer
	code := Run([]string{"report", "--config", configPath, "--csv", csvPath}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	reportPath := filepath.Join(root, "out", "report.html")
	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for _, id := range []string{"20260301T120000Z-aaaaaaaaaaaa", "20260302T120000Z-bbbbbbbbbbbb"} {
		if !strings.Contains(string(data), id) {
			t.Fatalf("expected report to include %s", id)
		}
	}
	csvData, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(csvData)), "\n"); len(lines) != 9 {
		t.Fatalf("expected header plus 8 rows, got %d", len(lines))
	}
}

func TestReportSelectsLatestRun(t *testing.T) {
	root, configPath := writeConfig(t, baselineConfig)
	runBaseline(t, configPath, "20260301T120000Z-aaaaaaaaaaaa")
	runBaseline(t, configPath, "20260302T120000Z-bbbbbbbbbbbb")

	outputPath := filepath.Join(root, "latest.html")
	var out, errOut bytes.Buffer
	code := Run([]string{"report", "--input", filepath.Join(root, "out"), "--run", "latest", "--output", outputPath}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if strings.Contains(string(data), "aaaaaaaaaaaa") || !strings.Contains(string(data), "bbbbbbbbbbbb") {
		t.Fatalf("expected only the latest run in report")
	}
}

func TestReportWithoutRunsFails(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run([]string{"report", "--input", t.TempDir()}, &out, &errOut); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "no runs") {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}
}

func TestReportSkipsUnknownRunRef(t *testing.T) {
	root, configPath := writeConfig(t, baselineConfig)
	runBaseline(t, configPath, "20260301T120000Z-aaaaaaaaaaaa")

	var out, errOut bytes.Buffer
	code := Run([]string{"report", "--input", filepath.Join(root, "out"), "--run", "missing", "--run", "20260301T120000Z-aaaaaaaaaaaa"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	if !strings.Contains(errOut.String(), "Warning:") {
		t.Fatalf("expected warning for unknown run, got %q", errOut.String())
	}
}

func TestReportListsScoresStoredInDuckDB(t *testing.T) {
	root, configPath := writeConfig(t, baselineConfig)
	dbPath := filepath.Join(root, "bench.duckdb")
	for _, id := range []string{"20260301T120000Z-aaaaaaaaaaaa", "20260302T120000Z-bbbbbbbbbbbb"} {
		stubRunSeams(t, id)
		var out, errOut bytes.Buffer
		if code := Run([]string{"run", "--config", configPath, "--ui", "plain", "--duckdb", dbPath}, &out, &errOut); code != ExitOK {
			t.Fatalf("run %s failed (%d): %s", id, code, errOut.String())
		}
	}

	var out, errOut bytes.Buffer
	if code := Run([]string{"report", "--duckdb", dbPath}, &out, &errOut); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 9 || !strings.HasPrefix(lines[0], "RUN") {
		t.Fatalf("expected header plus 8 rows:\n%s", out.String())
	}
	if !strings.HasPrefix(lines[1], "20260301T120000Z-aaaaaaaaaaaa") || !strings.HasPrefix(lines[8], "20260302T120000Z-bbbbbbbbbbbb") {
		t.Fatalf("expected oldest run first:\n%s", out.String())
	}
	for _, token := range []string{"anbn", "dyck", "accept-all", "reject-all"} {
		if !strings.Contains(out.String(), token) {
			t.Fatalf("expected %q in scores:\n%s", token, out.String())
		}
	}

	out.Reset()
	if code := Run([]string{"report", "--duckdb", dbPath, "--run", "latest"}, &out, &errOut); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	if strings.Contains(out.String(), "aaaaaaaaaaaa") || strings.Count(out.String(), "bbbbbbbbbbbb") != 4 {
		t.Fatalf("expected only the latest run:\n%s", out.String())
	}
}

func TestReportDuckDBErrors(t *testing.T) {
	root, configPath := writeConfig(t, baselineConfig)
	dbPath := filepath.Join(root, "bench.duckdb")
	stubRunSeams(t, "20260301T120000Z-aaaaaaaaaaaa")
	var out, errOut bytes.Buffer
	if code := Run([]string{"run", "--config", configPath, "--ui", "plain", "--duckdb", dbPath}, &out, &errOut); code != ExitOK {
		t.Fatalf("run failed (%d): %s", code, errOut.String())
	}

	cases := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"unknown run", []string{"report", "--duckdb", dbPath, "--run", "missing"}, ExitError, "run missing not stored"},
		{"missing file", []string{"report", "--duckdb", filepath.Join(root, "absent.duckdb")}, ExitError, "Failed to read scores"},
		{"with csv", []string{"report", "--duckdb", dbPath, "--csv", filepath.Join(root, "x.csv")}, ExitUsage, "cannot be combined"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if code := Run(tc.args, &out, &errOut); code != tc.code {
				t.Fatalf("expected exit %d, got %d (stderr %q)", tc.code, code, errOut.String())
			}
			if !strings.Contains(errOut.String(), tc.want) {
				t.Fatalf("expected %q in stderr, got %q", tc.want, errOut.String())
			}
		})
	}
	if _, err := os.Stat(filepath.Join(root, "absent.duckdb")); !os.IsNotExist(err) {
		t.Fatalf("missing database should not be created: %v", err)
	}
}
