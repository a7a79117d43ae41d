// Command schedulectl computes and validates project schedules from graph
// files and loads graphs into the scheduling database.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// errCyclesFound is returned after the cycles have been printed, so main
// only sets the exit code.
var errCyclesFound = errors.New("dependency cycles found")

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errCyclesFound) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "schedulectl",
		Short: "Critical path scheduling for project task graphs",
		Long: `schedulectl reads a project graph (tasks, dependencies and date
constraints) from a YAML or JSON file, validates that it is acyclic and
computes early/late dates, total float and the critical path.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(computeCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(importCmd())

	return root
}

func openGraphFile(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, errors.New("a graph file is required (-f)")
	}
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	return f, nil
}
