package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/evoscape/pkg/frontier"
	"github.com/matzehuels/evoscape/pkg/run"
)

// frontierCommand creates the frontier command for printing Pareto-optimal points.
func (c *CLI) frontierCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "frontier [run.json]",
		Short: "Print the Pareto-optimal points of a run",
		Long: `Print the Pareto-optimal points of a run.

A point is Pareto-optimal when no other point is at least as good on
quality, speed, and complexity and strictly better on one of them.
Quality and speed are maximized, complexity is minimized. Scalar fitness
plays no role in dominance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFrontier(args[0], all)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include dominated points")

	return cmd
}

// runFrontier loads the run and prints its frontier as a table.
func (c *CLI) runFrontier(input string, all bool) error {
	data, err := run.ReadRunFile(input)
	if err != nil {
		return fmt.Errorf("load run %s: %w", input, err)
	}

	points := data.FrontierPoints()
	if len(points) == 0 {
		printInfo("Run has no scored points")
		return nil
	}
	optimal := frontier.Optimal(points)

	sort.Slice(points, func(i, j int) bool {
		// Frontier first, then by descending quality
		if optimal[points[i].ID] != optimal[points[j].ID] {
			return optimal[points[i].ID]
		}
		return points[i].Quality > points[j].Quality
	})

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, p := range points {
		if !all && !optimal[p.ID] {
			continue
		}
		marker := ""
		if optimal[p.ID] {
			marker = iconSuccess
		}
		rows = append(rows, []string{
			marker,
			p.ID,
			fmt.Sprintf("%.3f", p.Quality),
			fmt.Sprintf("%.3f", p.Speed),
			fmt.Sprintf("%.3f", p.Complexity),
			fmt.Sprintf("%.3f", p.Fitness),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Quality", "Speed", "Complexity", "Fitness").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleSuccess
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	printDetail("%d of %d points on the frontier", len(run.FrontierIDs(optimal)), len(points))

	return nil
}
