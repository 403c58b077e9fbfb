package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// uiModeDecision captures whether to use the live UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// Test seams.
var (
	isTerminal    = defaultIsTerminal
	plainTerminal = defaultPlainTerminal
)

// resolveUIMode determines whether to enable the live UI.
func resolveUIMode(mode string, verbose bool, stdout io.Writer) (uiModeDecision, error) {
	if verbose {
		return uiModeDecision{useLive: false}, nil
	}
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}
	switch normalized {
	case "auto":
		return uiModeDecision{useLive: isTerminal(stdout) && !plainTerminal()}, nil
	case "live":
		if isTerminal(stdout) {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{
			useLive: false,
			warning: "Live UI requested but stdout is not a TTY; falling back to plain output.",
		}, nil
	case "plain":
		return uiModeDecision{useLive: false}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}

// defaultIsTerminal inspects stdout for TTY support.
func defaultIsTerminal(stdout io.Writer) bool {
	if stdout == nil {
		return false
	}
	if file, ok := stdout.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

// defaultPlainTerminal reports environments where auto mode keeps plain lines:
// CI logs and terminals without cursor addressing.
func defaultPlainTerminal() bool {
	if os.Getenv("CI") != "" {
		return true
	}
	return os.Getenv("TERM") == "dumb"
}
