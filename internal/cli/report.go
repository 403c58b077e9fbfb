package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"learnbench/internal/config"
	"learnbench/internal/report"
	"learnbench/internal/runner"
)

var (
	buildReportHTML = report.BuildReportHTML
	resolveRun      = report.ResolveRun
)

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var runRefs stringList
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		inputDir := fs.String("input", "", "Directory containing runs (default: output.dir from the config)")
		configPath := fs.String("config", "", "Path to config file (default: search for .learnbench/config.yml)")
		fs.Var(&runRefs, "run", "Run id or \"latest\"; repeatable (default: every stored run)")
		outputPath := fs.String("output", "", "Report output path")
		csvPath := fs.String("csv", "", "Also export per-learner scores of the selected runs to this CSV file")
		duckdbPath := fs.String("duckdb", "", "List stored scores from this DuckDB file instead of writing a report")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *duckdbPath != "" {
			if *outputPath != "" || *csvPath != "" {
				fmt.Fprintln(stderr, "--duckdb cannot be combined with --output or --csv")
				return ExitUsage
			}
			if err := printStoredScores(context.Background(), *duckdbPath, runRefs, stdout); err != nil {
				fmt.Fprintf(stderr, "Failed to read scores: %v\n", err)
				return ExitError
			}
			return ExitOK
		}

		outputDir, err := resolveInputDir(*inputDir, *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve input: %v\n", err)
			return ExitError
		}
		if len(runRefs) == 0 {
			ids, err := report.ListRuns(outputDir)
			if err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
				return ExitError
			}
			runRefs = ids
		}

		runs := make([]runner.Results, 0, len(runRefs))
		for _, ref := range runRefs {
			run, _, err := resolveRun(outputDir, ref)
			if err != nil {
				fmt.Fprintf(stderr, "Warning: %v\n", err)
				continue
			}
			runs = append(runs, run)
		}
		if len(runs) == 0 {
			fmt.Fprintln(stderr, "No runs found")
			return ExitError
		}

		html := buildReportHTML(runs)
		reportPath := *outputPath
		if reportPath == "" {
			reportPath = filepath.Join(outputDir, "report.html")
		}
		if err := os.WriteFile(reportPath, []byte(html), 0o644); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report written to %s\n", reportPath)
		if *csvPath != "" {
			if err := writeCSVFile(*csvPath, runs); err != nil {
				fmt.Fprintf(stderr, "Failed to write CSV: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "CSV written to %s\n", *csvPath)
		}
		return ExitOK
	}
}

// resolveInputDir returns the explicit input directory or the config's output directory.
func resolveInputDir(inputDir, configPath string) (string, error) {
	if strings.TrimSpace(inputDir) != "" {
		return filepath.Abs(inputDir)
	}
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return "", err
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return "", err
	}
	outputDir := cfg.Output.Dir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = config.DefaultOutputDir
	}
	return config.ResolvePath(config.BaseDirFromConfigPath(resolved), outputDir), nil
}
