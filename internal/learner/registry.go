package learner

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnknownLearner indicates a lookup for a name that was never registered.
	ErrUnknownLearner = errors.New("unknown learner")
	// ErrDuplicateLearner indicates a second registration under the same name.
	ErrDuplicateLearner = errors.New("learner already registered")
)

// Registry stores learners keyed by name.
type Registry struct {
	mu       sync.RWMutex
	learners map[string]Learner
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{learners: map[string]Learner{}}
}

// Register adds l under name.
func (r *Registry) Register(name string, l Learner) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("register learner: name is required")
	}
	if l == nil {
		return fmt.Errorf("register learner %q: learner is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.learners[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateLearner, name)
	}
	r.learners[name] = l
	return nil
}

// Lookup returns the learner registered under name.
func (r *Registry) Lookup(name string) (Learner, error) {
	r.mu.RLock()
	l, ok := r.learners[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLearner, name)
	}
	return l, nil
}

// Names returns the registered names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.learners))
	for name := range r.learners {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Builtin returns a registry holding the baseline learners.
func Builtin() *Registry {
	r := NewRegistry()
	_ = r.Register(BaselineRejectAll, Constant(false))
	_ = r.Register(BaselineAcceptAll, Constant(true))
	return r
}
