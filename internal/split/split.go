// Package split partitions a labeled dataset into learning and test subsets.
package split

import (
	"errors"
	"fmt"

	"learnbench/internal/trace"
)

// DefaultRatio is the learning share used when Splitter.Ratio is zero.
const DefaultRatio = 0.5

var (
	// ErrInvalidRatio indicates a ratio outside (0, 1].
	ErrInvalidRatio = errors.New("split ratio must be in (0, 1]")
	// ErrUnknownBoundary indicates an unsupported boundary policy.
	ErrUnknownBoundary = errors.New("unknown boundary policy")
)

// Boundary selects how a class's running count is compared with its fractional target.
type Boundary string

const (
	// BoundaryInclusive compares the count placed so far with the target using <=
	// before admitting, so the learning subset may hold one element more than r*count.
	BoundaryInclusive Boundary = "inclusive"
	// BoundaryWithin compares the count including the candidate with the target
	// using <=, so the learning subset never exceeds r*count.
	BoundaryWithin Boundary = "within"
)

// Splitter routes a Ratio share of each label class into the learning subset.
// The zero value splits at DefaultRatio with BoundaryInclusive slack.
type Splitter struct {
	Ratio    float64
	Boundary Boundary
	// SortByLength orders the dataset shortest first (stable) before scanning.
	SortByLength bool
}

// Split returns disjoint learning and test subsets that together cover data.
func (s Splitter) Split(data trace.Dataset) (learning, test trace.Dataset, err error) {
	ratio := s.Ratio
	if ratio == 0 {
		ratio = DefaultRatio
	}
	if !(ratio > 0 && ratio <= 1) {
		return nil, nil, fmt.Errorf("%w (got %v)", ErrInvalidRatio, ratio)
	}
	offset := 0.0
	switch s.Boundary {
	case "", BoundaryInclusive:
	case BoundaryWithin:
		offset = 1
	default:
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownBoundary, s.Boundary)
	}
	if s.SortByLength {
		data = data.SortedByLength()
	}

	balance := data.Balance()
	positiveTarget := float64(balance.Positive) * ratio
	negativeTarget := float64(balance.Negative) * ratio

	learning = make(trace.Dataset, 0, len(data)/2+2)
	test = make(trace.Dataset, 0, len(data)/2+2)
	positives, negatives := 0, 0
	for _, t := range data {
		switch {
		case t.Accepted && float64(positives)+offset <= positiveTarget:
			learning = append(learning, t)
			positives++
		case !t.Accepted && float64(negatives)+offset <= negativeTarget:
			learning = append(learning, t)
			negatives++
		default:
			test = append(test, t)
		}
	}
	return learning, test, nil
}
