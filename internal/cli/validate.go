package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"learnbench/internal/config"
	"learnbench/internal/spec"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .learnbench/config.yml)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		resolvedConfig, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		cfg, err := config.Load(resolvedConfig)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		models, err := buildModels(cfg.Models, config.BaseDirFromConfigPath(resolvedConfig))
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Config OK (%d ground truths)\n", len(models))
		fmt.Fprintf(stdout, "  dfa: %s\n", describeLearner(cfg.Learners.DFA))
		fmt.Fprintf(stdout, "  vpa: %s\n", describeLearner(cfg.Learners.VPA))
		return ExitOK
	}
}

// describeLearner renders a learner entry as "<label> (<source>)".
func describeLearner(cfg spec.LearnerConfig) string {
	source := "builtin " + cfg.Builtin
	if cfg.Builtin == "" {
		source = "command " + strings.Join(cfg.Command, " ")
		if cfg.TimeoutSeconds > 0 {
			source += fmt.Sprintf(", timeout %ds", cfg.TimeoutSeconds)
		}
	}
	return fmt.Sprintf("%s (%s)", cfg.Label, source)
}
