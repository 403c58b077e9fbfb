package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter asks init's interactive questions. EOF answers with the default where one exists.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) prompter {
	return prompter{in: bufio.NewReader(in), out: out}
}

// answer reads one line. eof is true when the input ended on this line.
func (p prompter) answer() (line string, eof bool, err error) {
	line, err = p.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return strings.TrimSpace(line), true, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(line), false, nil
}

// ask prompts for a free-form value, falling back to def on an empty answer.
func (p prompter) ask(label, def string) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", label, def)
		} else {
			fmt.Fprintf(p.out, "%s: ", label)
		}
		line, eof, err := p.answer()
		switch {
		case err != nil:
			return "", err
		case line != "":
			return line, nil
		case def != "":
			return def, nil
		case eof:
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// confirm prompts for yes or no and repeats on anything else while input remains.
func (p prompter) confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, hint)
		line, eof, err := p.answer()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if eof {
			return false, fmt.Errorf("invalid response %q", line)
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}
