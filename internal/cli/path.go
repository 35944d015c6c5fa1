package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/evoscape/pkg/run"
)

// pathCommand creates the path command for printing ancestor chains.
func (c *CLI) pathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path [run.json] [record-id]",
		Short: "Print the ancestor chain of a record",
		Long: `Print the ancestor chain of a record.

The path command walks the lineage from the root to the given record and
prints each ancestor with its generation and fitness. Chains whose
recorded parent is missing from the run are printed from the deepest
known ancestor.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPath(args[0], args[1])
		},
	}

	return cmd
}

// runPath loads the run and prints the root-to-target chain.
func (c *CLI) runPath(input, targetID string) error {
	data, err := run.ReadRunFile(input)
	if err != nil {
		return fmt.Errorf("load run %s: %w", input, err)
	}

	forest, err := data.Forest()
	if err != nil {
		return fmt.Errorf("build lineage: %w", err)
	}

	path, err := forest.AncestorPath(targetID)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	printInfo("Lineage of %s (%d steps)", StyleHighlight.Render(targetID), len(path)-1)
	printDetail("%s", strings.Join(path, " "+iconArrow+" "))
	printNewline()

	for i, id := range path {
		rec, ok := forest.Record(id)
		if !ok {
			continue
		}
		marker := "  "
		if i == len(path)-1 {
			marker = iconArrow + " "
		}
		line := fmt.Sprintf("%s%-20s gen %-4d fitness %.3f", marker, rec.ID, rec.Generation, rec.Fitness)
		if rec.Origin != "" {
			line += "  " + StyleDim.Render(string(rec.Origin))
		}
		fmt.Println(line)
	}

	return nil
}
