package cli

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/matzehuels/evoscape/pkg/frontier"
	"github.com/matzehuels/evoscape/pkg/pipeline"
	"github.com/matzehuels/evoscape/pkg/run"
)

// surfaceCommand creates the surface command for fitness surface reconstruction.
func (c *CLI) surfaceCommand() *cobra.Command {
	var (
		output string
		grid   int
	)

	cmd := &cobra.Command{
		Use:   "surface [run.json]",
		Short: "Reconstruct the fitness surface of a run",
		Long: `Reconstruct the fitness surface of a run.

The surface command interpolates the run's scored points onto a regular
grid over the unit quality/speed plane using inverse-distance weighting.
Cell heights carry complexity, cell colors carry fitness. The sampled
grid is written as JSON for downstream plotting tools.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSurface(args[0], output, grid)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&grid, "grid", pipeline.DefaultGridResolution, "grid resolution")

	return cmd
}

// runSurface loads the run, reconstructs the surface, and writes the samples.
func (c *CLI) runSurface(input, output string, grid int) error {
	data, err := run.ReadRunFile(input)
	if err != nil {
		return fmt.Errorf("load run %s: %w", input, err)
	}

	points := data.FrontierPoints()
	if len(points) == 0 {
		printInfo("Run has no scored points")
		return nil
	}

	samples := frontier.Reconstruct(points, grid)

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run.SurfaceFromSamples(samples)); err != nil {
		return fmt.Errorf("encode surface: %w", err)
	}

	if output != "" {
		minH, maxH := math.Inf(1), math.Inf(-1)
		for _, s := range samples {
			minH = math.Min(minH, s.Height)
			maxH = math.Max(maxH, s.Height)
		}
		printSuccess("Surface reconstructed")
		printFile(output)
		printDetail("%d×%d grid from %d points, height range [%.3f, %.3f]",
			grid, grid, len(points), minH, maxH)
	}

	return nil
}
