// Package generate produces labeled datasets from a ground-truth acceptor.
package generate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"learnbench/internal/automaton"
	"learnbench/internal/trace"
)

var (
	// ErrEmptyAlphabet indicates a ground truth with no input symbols.
	ErrEmptyAlphabet = errors.New("ground truth has an empty alphabet")
	// ErrInvalidCount indicates a non-positive number of sequences.
	ErrInvalidCount = errors.New("sequence count must be positive")
	// ErrInvalidLength indicates inconsistent length bounds.
	ErrInvalidLength = errors.New("invalid sequence length bounds")
)

// Defaults of the reference harness for random sampling.
const (
	DefaultCount     = 10000
	DefaultMaxLength = 50
)

// cancelCheckInterval bounds how many sequences are produced between context checks.
const cancelCheckInterval = 256

// Generator produces a labeled dataset from a ground truth. Implementations only
// reset and execute gt and draw randomness from rng.
type Generator interface {
	Generate(ctx context.Context, gt automaton.GroundTruth, rng *rand.Rand) (trace.Dataset, error)
}

// RandomSampler draws Count independent sequences with lengths uniform in
// [MinLength, MaxLength] over the merged alphabet and labels each one.
type RandomSampler struct {
	Count     int
	MinLength int
	MaxLength int
}

// Generate implements Generator.
func (s RandomSampler) Generate(ctx context.Context, gt automaton.GroundTruth, rng *rand.Rand) (trace.Dataset, error) {
	if s.Count <= 0 {
		return nil, fmt.Errorf("random sampler: %w (got %d)", ErrInvalidCount, s.Count)
	}
	minLen, maxLen, err := lengthBounds(s.MinLength, s.MaxLength)
	if err != nil {
		return nil, fmt.Errorf("random sampler: %w", err)
	}
	symbols := gt.InputAlphabet().Merged()
	if len(symbols) == 0 {
		return nil, fmt.Errorf("random sampler: %w", ErrEmptyAlphabet)
	}

	data := make(trace.Dataset, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		seq := randomWord(rng, symbols, minLen, maxLen)
		data = append(data, trace.Trace{Input: seq, Accepted: automaton.Verdict(gt, seq)})
	}
	return data, nil
}

// lengthBounds applies the default minimum of 1 and checks the bounds.
func lengthBounds(minLen, maxLen int) (int, int, error) {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		return 0, 0, fmt.Errorf("%w: min %d, max %d", ErrInvalidLength, minLen, maxLen)
	}
	return minLen, maxLen, nil
}

func randomWord(rng *rand.Rand, symbols []string, minLen, maxLen int) []string {
	n := minLen + rng.IntN(maxLen-minLen+1)
	seq := make([]string, n)
	for i := range seq {
		seq[i] = symbols[rng.IntN(len(symbols))]
	}
	return seq
}
