package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"learnbench/internal/automaton"
	"learnbench/internal/learner"
	"learnbench/internal/runner"
	"learnbench/internal/spec"
	"learnbench/internal/split"
)

// Generation strategies.
const (
	StrategyRandom      = "random"
	StrategyExploration = "exploration"
)

// BuiltinAll selects every catalogue model.
const BuiltinAll = "all"

// Validate checks a normalized config and the files it references relative to baseDir.
func Validate(cfg *spec.Config, baseDir string) error {
	c := &issueCollector{}
	if baseDir == "" {
		baseDir = "."
	}

	if cfg.Version == 0 {
		c.add("version", "is required")
	} else if cfg.Version != 1 {
		c.addf("version", "unsupported version %d", cfg.Version)
	}

	validateRun(cfg.Run, c)
	validateGeneration(cfg.Generation, c)
	validateLearner("learners.dfa", cfg.Learners.DFA, baseDir, c)
	validateLearner("learners.vpa", cfg.Learners.VPA, baseDir, c)
	validateModels(cfg.Models, baseDir, c)
	return c.result()
}

func validateRun(run spec.RunConfig, c *issueCollector) {
	if run.Workers < 1 {
		c.add("run.workers", "must be >= 1")
	}
	if _, err := runner.ParseFailurePolicy(run.OnFailure); err != nil {
		c.addf("run.on_failure", "unsupported value %q (want abort or continue)", run.OnFailure)
	}
	if math.IsNaN(run.SplitRatio) || run.SplitRatio <= 0 || run.SplitRatio > 1 {
		c.add("run.split_ratio", "must be in (0, 1]")
	}
	switch split.Boundary(run.SplitBoundary) {
	case split.BoundaryInclusive, split.BoundaryWithin:
	default:
		c.addf("run.split_boundary", "unsupported value %q (want inclusive or within)", run.SplitBoundary)
	}
}

func validateGeneration(gen spec.GenerationConfig, c *issueCollector) {
	switch gen.Strategy {
	case StrategyRandom:
		if gen.Count <= 0 {
			c.add("generation.count", "must be > 0")
		}
		if gen.MinLength < 1 {
			c.add("generation.min_length", "must be >= 1")
		}
		if gen.MaxLength < gen.MinLength {
			c.add("generation.max_length", "must be >= min_length")
		}
	case StrategyExploration:
		if gen.Walks <= 0 {
			c.add("generation.walks", "must be > 0")
		}
		if gen.WalkMinLength < 1 {
			c.add("generation.walk_min_length", "must be >= 1")
		}
		if gen.WalkMaxLength < gen.WalkMinLength {
			c.add("generation.walk_max_length", "must be >= walk_min_length")
		}
	default:
		c.addf("generation.strategy", "unsupported strategy %q (want random or exploration)", gen.Strategy)
	}
}

func validateLearner(field string, cfg spec.LearnerConfig, baseDir string, c *issueCollector) {
	hasCommand := len(cfg.Command) > 0
	hasBuiltin := strings.TrimSpace(cfg.Builtin) != ""
	switch {
	case hasCommand && hasBuiltin:
		c.add(field, "set either command or builtin, not both")
	case !hasCommand && !hasBuiltin:
		c.add(field, "command or builtin is required")
	case hasBuiltin:
		if _, err := learner.Builtin().Lookup(cfg.Builtin); err != nil {
			c.addf(field+".builtin", "unknown learner %q (known: %s)", cfg.Builtin, strings.Join(learner.Builtin().Names(), ", "))
		}
	case strings.TrimSpace(cfg.Command[0]) == "":
		c.add(field+".command", "first element must name the program")
	}
	if cfg.TimeoutSeconds < 0 {
		c.add(field+".timeout_seconds", "must be >= 0")
	}
	if dir := strings.TrimSpace(cfg.Dir); dir != "" {
		if info, err := os.Stat(ResolvePath(baseDir, dir)); err != nil || !info.IsDir() {
			c.addf(field+".dir", "directory not found at %q", dir)
		}
	}
	for i, entry := range cfg.Env {
		if !strings.Contains(entry, "=") {
			c.addf(field+".env", "entry %d must be KEY=VALUE", i)
		}
	}
}

func validateModels(models []spec.ModelConfig, baseDir string, c *issueCollector) {
	if len(models) == 0 {
		c.add("models", "at least one model is required")
	}
	known := map[string]struct{}{BuiltinAll: {}}
	for _, name := range automaton.CatalogueNames() {
		known[name] = struct{}{}
	}
	names := map[string]struct{}{}
	for i, model := range models {
		field := fmt.Sprintf("models[%d]", i)
		hasBuiltin := strings.TrimSpace(model.Builtin) != ""
		hasPath := strings.TrimSpace(model.Path) != ""
		switch {
		case hasBuiltin && hasPath:
			c.add(field, "set either builtin or path, not both")
		case !hasBuiltin && !hasPath:
			c.add(field, "builtin or path is required")
		case hasBuiltin:
			if _, ok := known[model.Builtin]; !ok {
				c.addf(field+".builtin", "unknown built-in model %q", model.Builtin)
			}
		default:
			info, err := os.Stat(ResolvePath(baseDir, model.Path))
			if err != nil {
				c.addf(field+".path", "file not found at %q", model.Path)
			} else if info.IsDir() {
				c.addf(field+".path", "path %q is a directory", model.Path)
			}
		}
		if name := strings.TrimSpace(model.Name); name != "" {
			if _, dup := names[name]; dup {
				c.addf("models.name", "duplicate name %q", name)
			}
			names[name] = struct{}{}
		}
	}
}

// ResolvePath joins relative paths onto baseDir.
func ResolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
