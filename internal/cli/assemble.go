package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"learnbench/internal/automaton"
	"learnbench/internal/compare"
	"learnbench/internal/config"
	"learnbench/internal/generate"
	"learnbench/internal/learner"
	"learnbench/internal/runner"
	"learnbench/internal/spec"
	"learnbench/internal/split"
)

// buildModels expands model entries into named ground truths, in config order.
// "all" contributes the whole catalogue.
func buildModels(models []spec.ModelConfig, baseDir string) ([]runner.NamedModel, error) {
	var out []runner.NamedModel
	for i, model := range models {
		switch {
		case model.Builtin == config.BuiltinAll:
			for _, gt := range automaton.Catalogue() {
				out = append(out, runner.NamedModel{Name: gt.Label(), Model: gt})
			}
		case model.Builtin != "":
			gt, err := automaton.Lookup(model.Builtin)
			if err != nil {
				return nil, fmt.Errorf("models[%d]: %w", i, err)
			}
			out = append(out, runner.NamedModel{Name: nameOr(model.Name, gt.Label()), Model: gt})
		default:
			gt, err := loadModelFile(config.ResolvePath(baseDir, model.Path))
			if err != nil {
				return nil, fmt.Errorf("models[%d]: %w", i, err)
			}
			fallback := gt.Label()
			if fallback == "" {
				fallback = strings.TrimSuffix(filepath.Base(model.Path), filepath.Ext(model.Path))
			}
			out = append(out, runner.NamedModel{Name: nameOr(model.Name, fallback), Model: gt})
		}
	}
	return out, nil
}

func loadModelFile(path string) (automaton.Automaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	gt, err := automaton.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return gt, nil
}

func nameOr(name, fallback string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fallback
}

// buildLearner resolves a learner entry to a built-in or an external command.
func buildLearner(kind learner.Kind, cfg spec.LearnerConfig, baseDir string) (learner.Learner, error) {
	if cfg.Builtin != "" {
		return learner.Builtin().Lookup(cfg.Builtin)
	}
	cmd := learner.NewCommand(kind, cfg.Command)
	cmd.Dir = baseDir
	if cfg.Dir != "" {
		cmd.Dir = config.ResolvePath(baseDir, cfg.Dir)
	}
	cmd.Env = append([]string(nil), cfg.Env...)
	cmd.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	return cmd, nil
}

// buildGenerator maps the generation strategy to a Generator.
func buildGenerator(gen spec.GenerationConfig) (generate.Generator, error) {
	switch gen.Strategy {
	case config.StrategyRandom:
		return generate.RandomSampler{Count: gen.Count, MinLength: gen.MinLength, MaxLength: gen.MaxLength}, nil
	case config.StrategyExploration:
		return generate.ExplorationReplay{Explorer: generate.RandomWalk{
			Walks:     gen.Walks,
			MinLength: gen.WalkMinLength,
			MaxLength: gen.WalkMaxLength,
		}}, nil
	default:
		return nil, fmt.Errorf("unsupported generation strategy %q", gen.Strategy)
	}
}

// buildReporter wires generator, splitter and learners from a loaded config.
func buildReporter(cfg spec.Config, baseDir string) (compare.Reporter, error) {
	generator, err := buildGenerator(cfg.Generation)
	if err != nil {
		return compare.Reporter{}, err
	}
	dfa, err := buildLearner(learner.KindDFA, cfg.Learners.DFA, baseDir)
	if err != nil {
		return compare.Reporter{}, fmt.Errorf("dfa learner: %w", err)
	}
	vpa, err := buildLearner(learner.KindVPA, cfg.Learners.VPA, baseDir)
	if err != nil {
		return compare.Reporter{}, fmt.Errorf("vpa learner: %w", err)
	}
	return compare.Reporter{
		Generator: generator,
		Splitter: split.Splitter{
			Ratio:        cfg.Run.SplitRatio,
			Boundary:     split.Boundary(cfg.Run.SplitBoundary),
			SortByLength: cfg.Run.SortByLength,
		},
		DFALearner: dfa,
		VPALearner: vpa,
		DFALabel:   cfg.Learners.DFA.Label,
		VPALabel:   cfg.Learners.VPA.Label,
	}, nil
}
