package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/evoscape/pkg/pipeline"
	"github.com/matzehuels/evoscape/pkg/run"
)

// renderCommand creates the render command for rendering from a computed view.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	c.setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [view.json]",
		Short: "Render artifacts from a computed view",
		Long: `Render artifacts from a computed view.

The render command takes a view.json file (produced by 'layout') and
renders it to SVG, DOT, or JSON. The view contains all positioning
information, so this step is purely about rendering.

Results are cached locally for faster subsequent runs.

Use 'view' as a shortcut to go directly from run.json to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show generation, fitness, and child counts in node labels")

	return cmd
}

// runRender loads the view and renders it.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	view, err := run.ReadViewFile(input)
	if err != nil {
		return fmt.Errorf("load view %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering view...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, view, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
		nodes:     len(view.Nodes),
		edges:     len(view.Edges),
		anomalies: len(view.Anomalies),
	})
}
