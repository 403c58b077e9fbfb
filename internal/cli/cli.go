package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		if len(args) > 1 {
			if cmd := findCommand(args[1]); cmd != nil {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[1])
			printUsage(stderr)
			return ExitUsage
		}
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  learnbench <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"learnbench <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .learnbench/config.yml", []string{
		"learnbench init [--config <path>]",
	}, runInit),
	command("validate", "Validate .learnbench/config.yml", []string{
		"learnbench validate [--config <path>]",
	}, runValidate),
	command("models", "List or export the built-in ground truths", []string{
		"learnbench models [--export <dir>]",
	}, runModels),
	command("run", "Compare the DFA and VPA learners on every ground truth", []string{
		"learnbench run [--config <path>] [--seed <n>] [--workers <n>] [--on-failure abort|continue]",
		"learnbench run [--output-dir <dir>] [--duckdb <file>] [--csv <file>] [--ui auto|live|plain] [--verbose] [--log-json]",
	}, runRun),
	command("report", "Render an HTML report across stored runs", []string{
		"learnbench report [--input <dir>] [--run <run-id|latest>]... [--output <file>] [--csv <file>]",
		"learnbench report --duckdb <file> [--run <run-id|latest>]...",
	}, runReport),
}
