// Package render turns computed views into Graphviz-based artifacts.
//
// # Overview
//
// This package produces directed lineage diagrams using Graphviz, where
// records appear as boxes grouped into generation ranks and connected by
// arrows following the mutation history. It complements the raw JSON view,
// which interactive frontends consume directly.
//
// # Usage
//
// Convert a view to DOT format, then render to SVG:
//
//	dot := render.ToDOT(view, render.Options{Detailed: false})
//	svg, err := render.RenderSVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include generation, fitness, and
//     child count
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with one rank
// per generation band, matching the canvas layout's vertical orientation.
// Pareto-optimal records are filled gold; records with malformed parent
// links get a dashed red outline.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package render
