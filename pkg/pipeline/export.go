package pipeline

import (
	"fmt"

	"github.com/matzehuels/evoscape/pkg/render"
	"github.com/matzehuels/evoscape/pkg/run"
)

// RenderArtifacts renders a view into every requested format.
//
// The DOT source is generated once and shared between the dot and svg
// formats so both artifacts always describe the same diagram.
func RenderArtifacts(v run.View, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string

	needDOT := func() string {
		if dot == "" {
			dot = render.ToDOT(v, render.Options{Detailed: opts.Detailed})
		}
		return dot
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := run.MarshalView(v)
			if err != nil {
				return nil, fmt.Errorf("marshal view: %w", err)
			}
			artifacts[FormatJSON] = data

		case FormatDOT:
			artifacts[FormatDOT] = []byte(needDOT())

		case FormatSVG:
			svg, err := render.RenderSVG(needDOT())
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[FormatSVG] = svg
		}
	}

	return artifacts, nil
}
