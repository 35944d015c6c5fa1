package run

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/evoscape/pkg/frontier"
	"github.com/matzehuels/evoscape/pkg/lineage"
)

// =============================================================================
// View - Unified Visualization Format
// =============================================================================

// View is the serialization format for the derived outputs of one
// pipeline execution. Presentation layers consume it as-is:
//
//   - Nodes/Edges: lineage tree positions and connective curves
//   - Frontier: recomputed Pareto-optimal point IDs
//   - Surface: IDW-reconstructed fitness surface grid
//   - Anomalies: IDs of records with malformed parent chains
//
// Nodes, Frontier, and Anomalies are sorted by ID so serialization is
// deterministic for identical input.
type View struct {
	// Parameters the view was computed with
	Width          float64 `json:"width" bson:"width"`
	Height         float64 `json:"height" bson:"height"`
	MaxDepth       int     `json:"max_depth" bson:"max_depth"`
	GridResolution int     `json:"grid_resolution" bson:"grid_resolution"`

	Nodes     []LayoutNode     `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Edges     []ConnectiveEdge `json:"edges,omitempty" bson:"edges,omitempty"`
	Frontier  []string         `json:"frontier,omitempty" bson:"frontier,omitempty"`
	Surface   []SurfaceSample  `json:"surface,omitempty" bson:"surface,omitempty"`
	Anomalies []string         `json:"anomalies,omitempty" bson:"anomalies,omitempty"`
}

// LayoutNode is a positioned lineage record.
type LayoutNode struct {
	ID         string  `json:"id" bson:"id"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Depth      int     `json:"depth" bson:"depth"`
	Generation int     `json:"generation" bson:"generation"`
	ChildCount int     `json:"child_count" bson:"child_count"`
	Fitness    float64 `json:"fitness" bson:"fitness"`
}

// CurvePoint is a 2D coordinate on the layout canvas.
type CurvePoint struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// ConnectiveEdge is one parent-to-child cubic curve.
type ConnectiveEdge struct {
	From   string     `json:"from" bson:"from"`
	To     string     `json:"to" bson:"to"`
	Start  CurvePoint `json:"start" bson:"start"`
	C1     CurvePoint `json:"c1" bson:"c1"`
	C2     CurvePoint `json:"c2" bson:"c2"`
	End    CurvePoint `json:"end" bson:"end"`
	Wobble float64    `json:"wobble" bson:"wobble"`
}

// SurfaceSample is one interpolated grid point of the fitness surface.
type SurfaceSample struct {
	GridX   int     `json:"gx" bson:"gx"`
	GridZ   int     `json:"gz" bson:"gz"`
	X       float64 `json:"x" bson:"x"`
	Z       float64 `json:"z" bson:"z"`
	Height  float64 `json:"height" bson:"height"`
	Fitness float64 `json:"fitness" bson:"fitness"`
}

// =============================================================================
// Core → View Conversion
// =============================================================================

// NodesFromLayout converts a layout result's node map to the
// serialization format, sorted by ID for deterministic output.
func NodesFromLayout(res lineage.Result) []LayoutNode {
	nodes := make([]LayoutNode, 0, len(res.Nodes))
	for _, n := range res.Nodes {
		nodes = append(nodes, LayoutNode{
			ID:         n.ID,
			X:          n.X,
			Y:          n.Y,
			Depth:      n.Depth,
			Generation: n.Generation,
			ChildCount: n.ChildCount,
			Fitness:    n.Fitness,
		})
	}
	slices.SortFunc(nodes, func(a, b LayoutNode) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return nodes
}

// EdgesFromLayout converts a layout result's curves to the serialization
// format, preserving their order.
func EdgesFromLayout(res lineage.Result) []ConnectiveEdge {
	edges := make([]ConnectiveEdge, len(res.Edges))
	for i, e := range res.Edges {
		edges[i] = ConnectiveEdge{
			From:   e.From,
			To:     e.To,
			Start:  CurvePoint{X: e.Start.X, Y: e.Start.Y},
			C1:     CurvePoint{X: e.C1.X, Y: e.C1.Y},
			C2:     CurvePoint{X: e.C2.X, Y: e.C2.Y},
			End:    CurvePoint{X: e.End.X, Y: e.End.Y},
			Wobble: e.Wobble,
		}
	}
	return edges
}

// FrontierIDs converts an optimal-ID set to a sorted slice.
func FrontierIDs(optimal map[string]bool) []string {
	ids := make([]string, 0, len(optimal))
	for id := range optimal {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SurfaceFromSamples converts surface samples to the serialization
// format, preserving their row-major order.
func SurfaceFromSamples(samples []frontier.Sample) []SurfaceSample {
	out := make([]SurfaceSample, len(samples))
	for i, s := range samples {
		out[i] = SurfaceSample{
			GridX:   s.GridX,
			GridZ:   s.GridZ,
			X:       s.X,
			Z:       s.Z,
			Height:  s.Height,
			Fitness: s.Fitness,
		}
	}
	return out
}

// =============================================================================
// View Serialization API
// =============================================================================

// MarshalView serializes a View to pretty-printed JSON bytes.
func MarshalView(v View) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// UnmarshalView deserializes JSON bytes into a View.
func UnmarshalView(data []byte) (View, error) {
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, fmt.Errorf("unmarshal view: %w", err)
	}
	return v, nil
}

// ReadView reads a View from r.
func ReadView(rd io.Reader) (View, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return View{}, fmt.Errorf("read view: %w", err)
	}
	return UnmarshalView(data)
}

// ReadViewFile reads a View from a JSON file.
func ReadViewFile(path string) (View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return View{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalView(data)
}

// WriteViewFile writes a View to a JSON file.
func WriteViewFile(v View, path string) error {
	data, err := MarshalView(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
