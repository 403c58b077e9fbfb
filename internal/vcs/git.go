package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNotRepository is returned when a directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Provenance identifies the workspace state a benchmark ran against.
type Provenance struct {
	Root   string `json:"root"`
	Commit string `json:"commit"`
	Branch string `json:"branch"`
	Dirty  bool   `json:"dirty"`
}

// Short returns the abbreviated commit with a dirty marker.
func (p Provenance) Short() string {
	commit := p.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if p.Dirty {
		return commit + "+dirty"
	}
	return commit
}

// gitRunner executes git commands.
type gitRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// execGitRunner invokes git via the system binary.
type execGitRunner struct{}

// Run executes a git command and returns trimmed stdout.
func (execGitRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", fmt.Errorf("git not found: %w", err)
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "no stderr"
		}
		return "", fmt.Errorf("git %s: %w (%s)", strings.Join(args, " "), err, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Client coordinates git operations and allows dependency injection.
type Client struct {
	runner gitRunner
}

// NewClient constructs a git client with an optional runner override.
func NewClient(runner gitRunner) Client {
	if runner == nil {
		runner = execGitRunner{}
	}
	return Client{runner: runner}
}

var defaultClient = NewClient(nil)

// DiscoverRepoRoot resolves the git root for a starting directory.
func DiscoverRepoRoot(ctx context.Context, startDir string) (string, error) {
	return defaultClient.DiscoverRepoRoot(ctx, startDir)
}

// Inspect reads the provenance of the work tree containing startDir.
func Inspect(ctx context.Context, startDir string) (Provenance, error) {
	return defaultClient.Inspect(ctx, startDir)
}

// DiscoverRepoRoot resolves the git root for a starting directory.
func (c Client) DiscoverRepoRoot(ctx context.Context, startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	root, err := c.runner.Run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotRepository, err)
	}
	return root, nil
}

// Inspect reads commit, branch and dirty state for the work tree containing startDir.
// A repository without commits reports an empty commit.
func (c Client) Inspect(ctx context.Context, startDir string) (Provenance, error) {
	root, err := c.DiscoverRepoRoot(ctx, startDir)
	if err != nil {
		return Provenance{}, err
	}
	out := Provenance{Root: root}
	if commit, err := c.runner.Run(ctx, root, "rev-parse", "HEAD"); err == nil {
		out.Commit = commit
	}
	branch, err := c.runner.Run(ctx, root, "rev-parse", "--abbrev-ref", "HEAD")
	if err == nil && branch != "HEAD" {
		out.Branch = branch
	}
	status, err := c.runner.Run(ctx, root, "status", "--porcelain")
	if err != nil {
		return Provenance{}, fmt.Errorf("check dirty state: %w", err)
	}
	out.Dirty = strings.TrimSpace(status) != ""
	return out, nil
}
