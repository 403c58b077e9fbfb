package generate

import (
	"context"
	"fmt"
	"math/rand/v2"

	"learnbench/internal/automaton"
	"learnbench/internal/trace"
)

// SUL is the capability set an exploration procedure drives: Pre opens a session,
// Step feeds one symbol, Post closes the session.
type SUL interface {
	Pre()
	Step(symbol string) bool
	Post()
}

// Observation is one (symbol, output) pair seen during a session.
type Observation struct {
	Symbol string
	Output bool
}

// Session is the ordered list of observations between a Pre and its Post.
type Session []Observation

// SessionRecorder adapts a ground truth into a SUL and records every session.
type SessionRecorder struct {
	gt       automaton.GroundTruth
	current  Session
	sessions []Session
}

// NewSessionRecorder wraps gt.
func NewSessionRecorder(gt automaton.GroundTruth) *SessionRecorder {
	return &SessionRecorder{gt: gt}
}

// Pre resets the ground truth and starts a new session buffer.
func (r *SessionRecorder) Pre() {
	r.current = nil
	r.gt.Reset()
}

// Step executes one symbol and records the output.
func (r *SessionRecorder) Step(symbol string) bool {
	out := r.gt.Execute([]string{symbol})
	output := len(out) > 0 && out[0]
	r.current = append(r.current, Observation{Symbol: symbol, Output: output})
	return output
}

// Post closes the current session.
func (r *SessionRecorder) Post() {
	r.sessions = append(r.sessions, r.current)
	r.current = nil
}

// Sessions returns the closed sessions in recording order.
func (r *SessionRecorder) Sessions() []Session {
	return r.sessions
}

// Explorer drives a SUL. It is the random-walk part of an equivalence search; any
// model it would learn is not produced here.
type Explorer interface {
	Explore(ctx context.Context, sul SUL, alphabet automaton.Alphabet, rng *rand.Rand) error
}

// Default random-walk parameters.
const (
	DefaultWalks         = 50000
	DefaultWalkMinLength = 6
	DefaultWalkMaxLength = 18
)

// RandomWalk performs Walks random words, one session each, with lengths uniform in
// [MinLength, MaxLength]. Zero fields take the defaults above.
type RandomWalk struct {
	Walks     int
	MinLength int
	MaxLength int
}

func (w RandomWalk) withDefaults() RandomWalk {
	if w.Walks == 0 {
		w.Walks = DefaultWalks
	}
	if w.MinLength == 0 {
		w.MinLength = DefaultWalkMinLength
	}
	if w.MaxLength == 0 {
		w.MaxLength = DefaultWalkMaxLength
	}
	return w
}

// Explore implements Explorer.
func (w RandomWalk) Explore(ctx context.Context, sul SUL, alphabet automaton.Alphabet, rng *rand.Rand) error {
	w = w.withDefaults()
	if w.Walks < 0 {
		return fmt.Errorf("random walk: %w (got %d)", ErrInvalidCount, w.Walks)
	}
	minLen, maxLen, err := lengthBounds(w.MinLength, w.MaxLength)
	if err != nil {
		return fmt.Errorf("random walk: %w", err)
	}
	symbols := alphabet.Merged()
	if len(symbols) == 0 {
		return fmt.Errorf("random walk: %w", ErrEmptyAlphabet)
	}
	for i := 0; i < w.Walks; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		sul.Pre()
		for _, symbol := range randomWord(rng, symbols, minLen, maxLen) {
			sul.Step(symbol)
		}
		sul.Post()
	}
	return nil
}

// ExplorationReplay runs an Explorer against a recording adapter and turns the
// recorded sessions into a dataset.
type ExplorationReplay struct {
	Explorer Explorer
}

// Generate implements Generator.
func (g ExplorationReplay) Generate(ctx context.Context, gt automaton.GroundTruth, rng *rand.Rand) (trace.Dataset, error) {
	explorer := g.Explorer
	if explorer == nil {
		explorer = RandomWalk{}
	}
	recorder := NewSessionRecorder(gt)
	if err := explorer.Explore(ctx, recorder, gt.InputAlphabet(), rng); err != nil {
		return nil, fmt.Errorf("exploration: %w", err)
	}
	return SessionsToDataset(recorder.Sessions()), nil
}

// SessionsToDataset labels every session prefix with the output observed after its
// last symbol. Repeated prefixes are kept once, at their first occurrence.
func SessionsToDataset(sessions []Session) trace.Dataset {
	seen := map[string]struct{}{}
	var data trace.Dataset
	for _, session := range sessions {
		input := make([]string, 0, len(session))
		for _, obs := range session {
			input = append(input, obs.Symbol)
			t := trace.New(input, obs.Output)
			key := t.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			data = append(data, t)
		}
	}
	return data
}
