package config

import (
	"strings"

	"learnbench/internal/compare"
	"learnbench/internal/generate"
	"learnbench/internal/runner"
	"learnbench/internal/spec"
	"learnbench/internal/split"
)

// Normalize fills defaults for every field left empty.
func Normalize(cfg *spec.Config) {
	if cfg.Run.Workers == 0 {
		cfg.Run.Workers = 1
	}
	cfg.Run.OnFailure = strings.ToLower(strings.TrimSpace(cfg.Run.OnFailure))
	if cfg.Run.OnFailure == "" {
		cfg.Run.OnFailure = string(runner.FailAbort)
	}
	if cfg.Run.SplitRatio == 0 {
		cfg.Run.SplitRatio = split.DefaultRatio
	}
	cfg.Run.SplitBoundary = strings.ToLower(strings.TrimSpace(cfg.Run.SplitBoundary))
	if cfg.Run.SplitBoundary == "" {
		cfg.Run.SplitBoundary = string(split.BoundaryInclusive)
	}

	gen := &cfg.Generation
	gen.Strategy = strings.ToLower(strings.TrimSpace(gen.Strategy))
	if gen.Strategy == "" {
		gen.Strategy = StrategyRandom
	}
	if gen.Count == 0 {
		gen.Count = generate.DefaultCount
	}
	if gen.MinLength == 0 {
		gen.MinLength = 1
	}
	if gen.MaxLength == 0 {
		gen.MaxLength = generate.DefaultMaxLength
	}
	if gen.Walks == 0 {
		gen.Walks = generate.DefaultWalks
	}
	if gen.WalkMinLength == 0 {
		gen.WalkMinLength = generate.DefaultWalkMinLength
	}
	if gen.WalkMaxLength == 0 {
		gen.WalkMaxLength = generate.DefaultWalkMaxLength
	}

	defaultLabel(&cfg.Learners.DFA, compare.DefaultDFALabel)
	defaultLabel(&cfg.Learners.VPA, compare.DefaultVPALabel)
	if len(cfg.Models) == 0 {
		cfg.Models = []spec.ModelConfig{{Builtin: BuiltinAll}}
	}
	for i := range cfg.Models {
		cfg.Models[i].Builtin = strings.TrimSpace(cfg.Models[i].Builtin)
		cfg.Models[i].Path = strings.TrimSpace(cfg.Models[i].Path)
	}
}

// defaultLabel names an unlabelled learner. Baselines are named after themselves so their
// scores never share a learner id with a real learner.
func defaultLabel(lc *spec.LearnerConfig, fallback string) {
	if strings.TrimSpace(lc.Label) != "" {
		return
	}
	if builtin := strings.TrimSpace(lc.Builtin); builtin != "" {
		lc.Label = builtin
		return
	}
	lc.Label = fallback
}
