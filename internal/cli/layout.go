package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/evoscape/pkg/cache"
	"github.com/matzehuels/evoscape/pkg/pipeline"
	"github.com/matzehuels/evoscape/pkg/run"
)

// layoutCommand creates the layout command for computing views without rendering.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	c.setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [run.json]",
		Short: "Compute the view from a run file without rendering",
		Long: `Compute the view from a run file without rendering.

The layout command takes a run.json file and computes the full view:
lineage tree positions, connective edges, the Pareto frontier, and the
reconstructed fitness surface. The output is a view.json file that can be
rendered later with the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.view.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached view exists")

	// Compute flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", opts.MaxDepth, "maximum generations to lay out")
	cmd.Flags().IntVar(&opts.GridResolution, "grid", opts.GridResolution, "fitness surface grid resolution")
	cmd.Flags().Float64Var(&opts.WobbleScale, "wobble", opts.WobbleScale, "edge wobble amplitude")

	return cmd
}

// runLayout loads the run, computes the view, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	runData, err := run.MarshalRun(data)
	if err != nil {
		return fmt.Errorf("serialize run: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing view...")
	spinner.Start()

	view, cacheHit, err := runner.ComputeViewWithCacheInfo(ctx, data, cache.Hash(runData), opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute view: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".view.json"
	}

	if err := run.WriteViewFile(view, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(view.Nodes), len(view.Edges), len(view.Anomalies), cacheHit)
	printNewline()
	printNextStep("Render", "evoscape render "+outputPath)

	return nil
}
