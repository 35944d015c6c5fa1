package pipeline

import (
	"github.com/matzehuels/evoscape/pkg/errors"
	"github.com/matzehuels/evoscape/pkg/frontier"
	"github.com/matzehuels/evoscape/pkg/lineage"
	"github.com/matzehuels/evoscape/pkg/run"
)

// GenerateView computes the complete view for a run: the lineage layout,
// the Pareto frontier, and the reconstructed fitness surface.
//
// The computation is pure and deterministic. Records with malformed
// parent links degrade to band-only positions and are reported in the
// view's Anomalies; they never fail the whole run.
func GenerateView(r run.Run, opts Options) (run.View, error) {
	if err := opts.ValidateForCompute(); err != nil {
		return run.View{}, err
	}
	if err := r.Validate(); err != nil {
		return run.View{}, err
	}

	forest, err := r.Forest()
	if err != nil {
		return run.View{}, errors.Wrap(errors.ErrCodeInvalidRun, err, "build lineage forest")
	}

	layout := lineage.Layout(forest, opts.LayoutOptions())

	points := r.FrontierPoints()
	optimal := frontier.Optimal(points)
	samples := frontier.Reconstruct(points, opts.GridResolution)

	return run.View{
		Width:          opts.Width,
		Height:         opts.Height,
		MaxDepth:       opts.MaxDepth,
		GridResolution: opts.GridResolution,
		Nodes:          run.NodesFromLayout(layout),
		Edges:          run.EdgesFromLayout(layout),
		Frontier:       run.FrontierIDs(optimal),
		Surface:        run.SurfaceFromSamples(samples),
		Anomalies:      layout.Anomalies,
	}, nil
}
