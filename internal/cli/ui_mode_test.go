package cli

import (
	"io"
	"testing"
)

// TestResolveUIMode verifies ui mode decision logic.
func TestResolveUIMode(t *testing.T) {
	cases := []struct {
		name       string
		mode       string
		verbose    bool
		isTTY      bool
		plainEnv   bool
		expectLive bool
		wantWarn   bool
		wantErr    bool
	}{
		{name: "auto tty", mode: "auto", verbose: false, isTTY: true, expectLive: true},
		{name: "auto non-tty", mode: "auto", verbose: false, isTTY: false, expectLive: false},
		{name: "auto under ci", mode: "auto", isTTY: true, plainEnv: true, expectLive: false},
		{name: "live under ci", mode: "live", isTTY: true, plainEnv: true, expectLive: true},
		{name: "empty means auto", mode: " ", isTTY: true, expectLive: true},
		{name: "plain", mode: "plain", verbose: false, isTTY: true, expectLive: false},
		{name: "verbose disables", mode: "auto", verbose: true, isTTY: true, expectLive: false},
		{name: "live tty", mode: "live", verbose: false, isTTY: true, expectLive: true},
		{name: "live non-tty warning", mode: "live", verbose: false, isTTY: false, expectLive: false, wantWarn: true},
		{name: "invalid mode", mode: "nope", verbose: false, isTTY: true, wantErr: true},
	}

	originalTTY, originalPlain := isTerminal, plainTerminal
	t.Cleanup(func() { isTerminal, plainTerminal = originalTTY, originalPlain })

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isTerminal = func(_ io.Writer) bool { return tc.isTTY }
			plainTerminal = func() bool { return tc.plainEnv }
			decision, err := resolveUIMode(tc.mode, tc.verbose, nil)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decision.useLive != tc.expectLive {
				t.Fatalf("expected useLive=%v, got %v", tc.expectLive, decision.useLive)
			}
			if tc.wantWarn && decision.warning == "" {
				t.Fatalf("expected warning")
			}
			if !tc.wantWarn && decision.warning != "" {
				t.Fatalf("did not expect warning")
			}
		})
	}
}

func TestDefaultPlainTerminal(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("TERM", "xterm-256color")
	if !defaultPlainTerminal() {
		t.Fatalf("expected CI to force plain output")
	}
	t.Setenv("CI", "")
	if defaultPlainTerminal() {
		t.Fatalf("expected live-capable terminal")
	}
	t.Setenv("TERM", "dumb")
	if !defaultPlainTerminal() {
		t.Fatalf("expected dumb terminal to force plain output")
	}
}
