package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"learnbench/internal/automaton"
)

// runModels lists the catalogue or exports it as automaton JSON files.
func runModels(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		exportDir := fs.String("export", "", "Write each model as <name>.json into this directory")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		models := automaton.Catalogue()
		if *exportDir != "" {
			if err := exportModels(*exportDir, models); err != nil {
				fmt.Fprintf(stderr, "Export failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Wrote %d models to %s\n", len(models), *exportDir)
			return ExitOK
		}

		tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSTATES\tCALL\tRETURN\tINTERNAL\tEMPTY")
		for _, model := range models {
			alphabet := model.InputAlphabet()
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%t\n",
				model.Label(), model.Size(),
				symbols(alphabet.Call), symbols(alphabet.Return), symbols(alphabet.Internal),
				model.AcceptsEmpty())
		}
		if err := tw.Flush(); err != nil {
			fmt.Fprintf(stderr, "write models: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

func symbols(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, " ")
}

func exportModels(dir string, models []*automaton.VPA) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	for _, model := range models {
		data, err := automaton.Encode(model)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, model.Label()+".json")
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
