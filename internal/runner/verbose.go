package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const verbosePrefix = "[verbose]"

type verboseStyle int

const (
	styleExperiment verboseStyle = iota
	styleMetrics
	styleError
	styleSkipped
)

const ansiReset = "\x1b[0m"

// verboseStyles maps each style to its ANSI opening sequence.
var verboseStyles = map[verboseStyle]string{
	styleExperiment: "\x1b[1m\x1b[34m",
	styleMetrics:    "\x1b[1m\x1b[32m",
	styleError:      "\x1b[1m\x1b[31m",
	styleSkipped:    "\x1b[33m",
}

const prefixStyle = "\x1b[2m\x1b[90m"

// verboseLog writes prefixed progress lines for one run. The zero value discards.
type verboseLog struct {
	w      io.Writer
	styled bool
}

// newVerboseLog decides once per run whether lines go out and whether they are styled.
// Parallel runs share the writer across goroutines, so it gets a lock.
func newVerboseLog(params RunParams) verboseLog {
	if !params.Verbose || params.VerboseWriter == nil {
		return verboseLog{}
	}
	return verboseLog{
		w:      wrapVerboseWriter(params.Workers, params.VerboseWriter),
		styled: !params.NoColor && stylingAllowed(params.VerboseWriter),
	}
}

func (v verboseLog) printf(style verboseStyle, format string, args ...any) {
	if v.w == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	if !v.styled {
		fmt.Fprintf(v.w, "%s %s\n", verbosePrefix, line)
		return
	}
	fmt.Fprintf(v.w, "%s%s%s %s%s%s\n", prefixStyle, verbosePrefix, ansiReset, verboseStyles[style], line, ansiReset)
}

// stylingAllowed reports whether w is a terminal and the environment permits color.
func stylingAllowed(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" || strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	switch f := w.(type) {
	case *os.File:
		return term.IsTerminal(int(f.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
