package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/evoscape/pkg/pipeline"
	"github.com/matzehuels/evoscape/pkg/run"
)

// viewCommand creates the view command running the full pipeline.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	c.setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "view [run.json]",
		Short: "Compute and render a visualization from a run file",
		Long: `Compute and render a visualization from a run file.

The view command takes a run.json file (exported from a search run, or
produced by 'gen') and runs the complete pipeline: lineage tree layout,
Pareto frontier detection, fitness surface reconstruction, and rendering
to the requested formats.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runView(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached view exists")

	// Compute flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", opts.MaxDepth, "maximum generations to lay out")
	cmd.Flags().IntVar(&opts.GridResolution, "grid", opts.GridResolution, "fitness surface grid resolution")
	cmd.Flags().Float64Var(&opts.WobbleScale, "wobble", opts.WobbleScale, "edge wobble amplitude")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show generation, fitness, and child counts in node labels")

	return cmd
}

// runView loads the run, executes the pipeline, and writes all artifacts.
func (c *CLI) runView(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, err := run.ReadRunFile(input)
	if err != nil {
		return fmt.Errorf("load run %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing view...")
	spinner.Start()

	result, err := runner.Execute(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Pipeline failed")
		return fmt.Errorf("view: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, id := range result.View.Anomalies {
		printWarning("malformed lineage: %s (shown without parent edge)", id)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.ComputeHit && result.CacheInfo.RenderHit,
		nodes:     len(result.View.Nodes),
		edges:     len(result.View.Edges),
		anomalies: len(result.View.Anomalies),
	})
}
