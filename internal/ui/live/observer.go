package live

import (
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"learnbench/internal/runner"
)

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events  chan Event
	program *tea.Program
	done    chan struct{}
	mu      sync.RWMutex
	closed  bool
	now     func() time.Time
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.events)
	}
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string, total int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Total: total})
}

// OnExperimentStart forwards experiment start events to the UI.
func (c *Controller) OnExperimentStart(index int, name string) {
	c.send(Event{Kind: EventExperimentStart, Index: index, Name: name})
}

// OnExperimentEnd forwards finished experiments to the UI.
func (c *Controller) OnExperimentEnd(outcome runner.Outcome) {
	c.send(Event{Kind: EventExperimentEnd, Index: outcome.Index, Outcome: outcome})
}

// OnRunEnd forwards run completion events to the UI and closes it.
func (c *Controller) OnRunEnd(results runner.Results) {
	c.send(Event{Kind: EventRunEnd, RunID: results.RunID})
	c.Close()
}

// send enqueues an event without blocking the caller. Events after Close are dropped.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	if event.EmittedAt.IsZero() && c.now != nil {
		event.EmittedAt = c.now()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
