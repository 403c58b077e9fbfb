package learner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"learnbench/internal/automaton"
	"learnbench/internal/trace"
)

// ErrEmptyCommand indicates a Command without an executable.
var ErrEmptyCommand = errors.New("learner command is empty")

// Request is the JSON document written to a learner process on stdin.
type Request struct {
	Kind     Kind               `json:"kind"`
	Alphabet automaton.Alphabet `json:"alphabet"`
	Options  Options            `json:"options"`
	Samples  []trace.Trace      `json:"samples"`
}

// processRunner executes a learner process.
type processRunner interface {
	Run(ctx context.Context, argv []string, dir string, env []string, stdin []byte) ([]byte, error)
}

type execProcessRunner struct{}

// Run executes argv with stdin and returns stdout. Failures carry trimmed stderr.
func (execProcessRunner) Run(ctx context.Context, argv []string, dir string, env []string, stdin []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", argv[0], ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "no stderr"
		}
		return nil, fmt.Errorf("%s: %w (%s)", argv[0], err, msg)
	}
	return stdout.Bytes(), nil
}

// Command runs an external learner program. The program reads a Request from
// stdin and prints an automaton document (see automaton.Decode) on stdout.
type Command struct {
	Kind Kind
	Argv []string
	Dir  string
	Env  []string
	// Timeout bounds a single Learn call; zero means no limit.
	Timeout time.Duration

	runner processRunner
}

// NewCommand builds a learner that executes argv.
func NewCommand(kind Kind, argv []string) *Command {
	return &Command{Kind: kind, Argv: append([]string(nil), argv...)}
}

// Learn sends data to the process and decodes the automaton it prints.
func (c *Command) Learn(ctx context.Context, data trace.Dataset, alphabet automaton.Alphabet, opts Options) (Model, error) {
	if len(c.Argv) == 0 || strings.TrimSpace(c.Argv[0]) == "" {
		return nil, ErrEmptyCommand
	}
	samples := []trace.Trace(data)
	if samples == nil {
		samples = []trace.Trace{}
	}
	payload, err := json.Marshal(Request{Kind: c.Kind, Alphabet: alphabet, Options: opts, Samples: samples})
	if err != nil {
		return nil, fmt.Errorf("encode learner request: %w", err)
	}
	runner := c.runner
	if runner == nil {
		runner = execProcessRunner{}
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	out, err := runner.Run(ctx, c.Argv, c.Dir, c.Env, payload)
	if err != nil {
		return nil, err
	}
	model, err := automaton.Decode(bytes.TrimSpace(out))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Argv[0], err)
	}
	return model, nil
}
