package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// DefaultTimeout bounds a test context when no timeout is given.
const DefaultTimeout = 5 * time.Second

// Context returns a context canceled at test cleanup or after timeout, whichever comes
// first. The timeout shrinks to leave a second before the test binary's own deadline.
// context.Cause reports which test timed out.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if deadline, ok := t.Deadline(); ok {
		if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	ctx, cancel := context.WithTimeoutCause(context.Background(), timeout, fmt.Errorf("%s: timed out after %s", t.Name(), timeout))
	t.Cleanup(cancel)
	return ctx
}
