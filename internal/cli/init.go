package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"learnbench/internal/config"
	"learnbench/internal/vcs"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: .learnbench/config.yml at the git root or working directory)")
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

		in := initInput
		if in == nil {
			in = os.Stdin
		}
		ask := newPrompter(in, stdout)

		var targetPath string
		var configDir string
		var repoRoot string

		configPathValue := strings.TrimSpace(*configPath)
		if configPathValue == "" {
			repoRoot = discoverGitRoot("")
			baseDir := repoRoot
			if baseDir == "" {
				wd, err := os.Getwd()
				if err != nil {
					fmt.Fprintf(stderr, "Init failed: %v\n", err)
					return ExitError
				}
				baseDir = wd
			}
			configDir = filepath.Join(baseDir, config.ConfigDirName)
			targetPath = filepath.Join(configDir, config.ConfigFileName)
		} else {
			absPath, err := filepath.Abs(configPathValue)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			targetPath = absPath
			configDir = filepath.Dir(targetPath)
			repoRoot = discoverGitRoot(config.BaseDirFromConfigPath(targetPath))
		}

		if info, err := os.Stat(configDir); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: config directory %q is not a directory\n", configDir)
			return ExitError
		}
		if info, err := os.Stat(targetPath); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: config path %q is a directory\n", targetPath)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", targetPath)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat config file: %v\n", err)
			return ExitError
		}

		confirm, err := ask.confirm(fmt.Sprintf("Initialize learnbench config in %s?", configDir), true)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !confirm {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}

		outputDir, err := ask.ask("Results folder", config.DefaultOutputDir)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		addGitignore := false
		if repoRoot != "" {
			answer, err := ask.confirm("Add results folder to .gitignore?", true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			addGitignore = answer
		}

		if err := config.Scaffold(targetPath, outputDir); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Wrote %s\n", targetPath)
		fmt.Fprintln(stdout, "The config starts with baseline learners. Point learners.dfa and learners.vpa at your RPNI and PAPNI programs, then run \"learnbench validate\".")
		if addGitignore {
			updated, err := addGitignoreEntry(repoRoot, outputDir)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(repoRoot, ".gitignore"))
			}
		}
		return ExitOK
	}
}

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// discoverGitRoot returns the git root or empty when not found.
func discoverGitRoot(startDir string) string {
	root, err := vcs.DiscoverRepoRoot(context.Background(), startDir)
	if err != nil {
		return ""
	}
	return root
}
