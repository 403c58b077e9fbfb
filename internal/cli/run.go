package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"learnbench/internal/config"
	"learnbench/internal/duckdb"
	"learnbench/internal/report"
	"learnbench/internal/runner"
	"learnbench/internal/spec"
	"learnbench/internal/ui/live"
	"learnbench/internal/vcs"
)

// liveView is the live UI as seen by run: an observer that can be closed and awaited.
type liveView interface {
	runner.RunObserver
	Close()
	Wait()
}

// Test seams.
var (
	runExperiments   = runner.Run
	inspectWorkspace = vcs.Inspect
	runDependencies  = func() runner.RunDependencies { return runner.RunDependencies{} }
	startLiveView    = func(stdout io.Writer, opts live.Options) liveView { return live.Start(stdout, opts) }
)

type runFlags struct {
	configPath string
	seed       uint64
	workers    int
	onFailure  string
	outputDir  string
	duckdbPath string
	csvPath    string
	uiMode     string
	verbose    bool
	noColor    bool
	logJSON    bool
}

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var opts runFlags
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		fs.StringVar(&opts.configPath, "config", "", "Path to config file (default: search for .learnbench/config.yml)")
		fs.Uint64Var(&opts.seed, "seed", 0, "Override run.seed")
		fs.IntVar(&opts.workers, "workers", 0, "Override run.workers")
		fs.StringVar(&opts.onFailure, "on-failure", "", "Override run.on_failure (abort|continue)")
		fs.StringVar(&opts.outputDir, "output-dir", "", "Override output.dir")
		fs.StringVar(&opts.duckdbPath, "duckdb", "", "Also store results in this DuckDB file")
		fs.StringVar(&opts.csvPath, "csv", "", "Also export per-learner scores to this CSV file")
		fs.StringVar(&opts.uiMode, "ui", "auto", "Console UI: auto|live|plain")
		fs.BoolVar(&opts.verbose, "verbose", false, "Print per-experiment progress and info logs")
		fs.BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colors")
		fs.BoolVar(&opts.logJSON, "log-json", false, "Emit structured logs as JSON on stderr")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		seedSet := false
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "seed" {
				seedSet = true
			}
		})

		resolvedConfig, err := resolveConfigPath(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolvedConfig)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		if err := applyRunOverrides(&cfg, opts, seedSet); err != nil {
			fmt.Fprintf(stderr, "Invalid options: %v\n", err)
			return ExitUsage
		}
		baseDir := config.BaseDirFromConfigPath(resolvedConfig)

		models, err := buildModels(cfg.Models, baseDir)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load models: %v\n", err)
			return ExitError
		}
		reporter, err := buildReporter(cfg, baseDir)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to set up learners: %v\n", err)
			return ExitError
		}

		decision, err := resolveUIMode(opts.uiMode, opts.verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		logger := newLogger(stderr, opts.logJSON, opts.verbose)
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		runCtx, cancelRun := context.WithCancel(ctx)
		defer cancelRun()

		var workspace *vcs.Provenance
		if prov, err := inspectWorkspace(ctx, baseDir); err == nil {
			workspace = &prov
		} else {
			logger.Debug("workspace provenance unavailable", zap.Error(err))
		}

		deps := runDependencies()
		deps.Logger = logger
		params := runner.RunParams{
			Reporter:      reporter,
			Seed:          cfg.Run.Seed,
			Workers:       cfg.Run.Workers,
			OnFailure:     runner.FailurePolicy(cfg.Run.OnFailure),
			Output:        stdout,
			Verbose:       opts.verbose,
			VerboseWriter: stderr,
			NoColor:       opts.noColor,
			Workspace:     workspace,
		}
		var view liveView
		if decision.useLive {
			view = startLiveView(stdout, live.Options{NoColor: opts.noColor, Interrupt: cancelRun})
			deps.Observer = view
			params.Output = io.Discard
		}
		params.Deps = deps

		results, runErr := runExperiments(runCtx, models, params)
		if view != nil {
			view.Close()
			view.Wait()
			// The alt screen is gone once the view exits; the per-model lines go to stdout now.
			fmt.Fprint(stdout, runner.SummaryLines(results))
		}
		if results.RunID == "" {
			fmt.Fprintf(stderr, "Run failed: %v\n", runErr)
			return ExitError
		}

		persistCtx := context.WithoutCancel(ctx)
		if err := persistRun(persistCtx, cfg.Output, baseDir, results, stdout); err != nil {
			fmt.Fprintf(stderr, "Failed to write results: %v\n", err)
			return ExitError
		}
		if runErr != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", runErr)
			return ExitError
		}
		fmt.Fprintf(stdout, "Run %s completed\n", results.RunID)
		return ExitOK
	}
}

// applyRunOverrides layers command-line flags over the loaded config.
func applyRunOverrides(cfg *spec.Config, opts runFlags, seedSet bool) error {
	if seedSet {
		cfg.Run.Seed = opts.seed
	}
	if opts.workers < 0 {
		return fmt.Errorf("--workers must be >= 1")
	}
	if opts.workers > 0 {
		cfg.Run.Workers = opts.workers
	}
	if opts.onFailure != "" {
		policy, err := runner.ParseFailurePolicy(opts.onFailure)
		if err != nil {
			return err
		}
		cfg.Run.OnFailure = string(policy)
	}
	// Paths given on the command line are relative to the working directory.
	for _, override := range []struct {
		flag   string
		target *string
	}{
		{opts.outputDir, &cfg.Output.Dir},
		{opts.duckdbPath, &cfg.Output.DuckDB},
		{opts.csvPath, &cfg.Output.CSV},
	} {
		if override.flag == "" {
			continue
		}
		abs, err := filepath.Abs(override.flag)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", override.flag, err)
		}
		*override.target = abs
	}
	return nil
}

// persistRun writes the run directory and the optional DuckDB and CSV sinks.
func persistRun(ctx context.Context, output spec.OutputConfig, baseDir string, results runner.Results, stdout io.Writer) error {
	outputDir := output.Dir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = config.DefaultOutputDir
	}
	paths, err := runner.WriteRunOutputs(ctx, results, config.ResolvePath(baseDir, outputDir))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
	fmt.Fprintf(stdout, "Report: %s\n", paths.ReportPath())

	var errs []error
	if output.DuckDB != "" {
		path := config.ResolvePath(baseDir, output.DuckDB)
		if err := storeRun(ctx, path, results); err != nil {
			errs = append(errs, err)
		} else {
			fmt.Fprintf(stdout, "DuckDB: %s\n", path)
		}
	}
	if output.CSV != "" {
		path := config.ResolvePath(baseDir, output.CSV)
		if err := writeCSVFile(path, []runner.Results{results}); err != nil {
			errs = append(errs, err)
		} else {
			fmt.Fprintf(stdout, "CSV: %s\n", path)
		}
	}
	return errors.Join(errs...)
}

func storeRun(ctx context.Context, path string, results runner.Results) error {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := duckdb.IngestRun(ctx, db, results); err != nil {
		return fmt.Errorf("store run in %s: %w", path, err)
	}
	return nil
}

func writeCSVFile(path string, runs []runner.Results) error {
	var rows []report.ScoreRow
	for _, run := range runs {
		rows = append(rows, report.ScoreRows(run)...)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := report.WriteCSV(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
