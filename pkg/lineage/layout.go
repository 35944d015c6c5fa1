package lineage

import (
	"slices"
	"sort"
)

// Default layout parameters. The pipeline exposes these as its own
// defaults; direct callers get them via [Options] zero values.
const (
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultMaxDepth    = 64
	DefaultMarginX     = 40.0
	DefaultWobbleScale = 120.0
	DefaultCurveOffset = 40.0
)

// parentPull is the fraction of a node's position taken from its parent's
// X coordinate. The remainder comes from the even in-band distribution,
// producing an ancestry-following layout instead of a rigid grid.
const parentPull = 0.4

// Options configures the lineage layout.
// Zero values are replaced with the package defaults.
type Options struct {
	Width  float64 // Canvas width
	Height float64 // Canvas height

	// MaxDepth bounds the number of rendered generations: records with a
	// generation index greater than MaxDepth are discarded before layout.
	MaxDepth int

	// MarginX is the horizontal margin kept free at both canvas edges.
	MarginX float64

	// WobbleScale scales the horizontal curve offset derived from the
	// child's fitness. Children above 0.5 fitness bow one way, children
	// below it the other.
	WobbleScale float64

	// CurveOffset is the fixed vertical distance of the curve control
	// points from the edge's midpoint.
	CurveOffset float64
}

func (o Options) normalize() Options {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MarginX == 0 {
		o.MarginX = DefaultMarginX
	}
	if o.WobbleScale == 0 {
		o.WobbleScale = DefaultWobbleScale
	}
	if o.CurveOffset == 0 {
		o.CurveOffset = DefaultCurveOffset
	}
	return o
}

// Node is a positioned lineage record.
type Node struct {
	ID         string
	X, Y       float64
	Depth      int // Contiguous band index (0 = root band)
	Generation int // Original generation index
	ChildCount int // Direct children among laid-out records
	Fitness    float64
}

// Point is a 2D coordinate on the layout canvas.
type Point struct {
	X, Y float64
}

// Edge is one parent-to-child visual link described as a cubic curve.
//
// The control points sit CurveOffset above and below the edge midpoint and
// are shifted horizontally by Wobble, so edges bend according to whether
// the mutation improved or worsened fitness.
type Edge struct {
	From, To string
	Start    Point
	C1, C2   Point
	End      Point
	Wobble   float64
}

// Result is the output of [Layout].
type Result struct {
	// Nodes maps record ID to its positioned node. Exactly one node per
	// retained input record.
	Nodes map[string]Node

	// Edges holds one curve per well-formed (parent, child) pair, in the
	// input order of the child records.
	Edges []Edge

	// Anomalies lists the IDs of retained records whose parent link
	// violates the generation ordering (see [Forest.Malformed]). Their
	// nodes fall back to band-only positions.
	Anomalies []string
}

// Layout computes 2D positions for every record in the forest, grouped
// into generation bands, plus the connective curves between parents and
// children.
//
// Bands are stacked vertically with the root band at minimum Y (top of
// the canvas) and the deepest band at Height. Within a band, nodes are
// ordered by their parent's X coordinate (stable, so ties keep input
// order), distributed evenly across the width, then pulled 40% of the way
// toward their parent.
//
// The computation is fully deterministic: identical input yields
// bit-identical output. An empty forest yields an empty result.
func Layout(f *Forest, opts Options) Result {
	opts = opts.normalize()

	res := Result{Nodes: make(map[string]Node)}
	if f.Len() == 0 {
		return res
	}

	// Discard generations beyond MaxDepth.
	var retained []Record
	for _, r := range f.Records() {
		if r.Generation <= opts.MaxDepth {
			retained = append(retained, r)
		}
	}
	if len(retained) == 0 {
		return res
	}

	// Re-index sparse generations into contiguous bands.
	depthOf := bandIndex(retained)
	maxBand := 0
	for _, d := range depthOf {
		if d > maxBand {
			maxBand = d
		}
	}

	bands := make([][]Record, maxBand+1)
	for _, r := range retained {
		d := depthOf[r.Generation]
		bands[d] = append(bands[d], r)
	}

	childCount := make(map[string]int, len(retained))
	retainedSet := make(map[string]struct{}, len(retained))
	for _, r := range retained {
		retainedSet[r.ID] = struct{}{}
	}
	for _, r := range retained {
		if r.ParentID == "" {
			continue
		}
		if _, ok := retainedSet[r.ParentID]; ok {
			childCount[r.ParentID]++
		}
	}

	// Place bands top-down so parent positions exist before children use
	// them for ordering and nudging.
	positions := make(map[string]Point, len(retained))
	for d, band := range bands {
		y := opts.Height * float64(d) / float64(max(1, maxBand))
		placeBand(band, y, opts, positions)
		for _, r := range band {
			p := positions[r.ID]
			res.Nodes[r.ID] = Node{
				ID:         r.ID,
				X:          p.X,
				Y:          p.Y,
				Depth:      d,
				Generation: r.Generation,
				ChildCount: childCount[r.ID],
				Fitness:    r.Fitness,
			}
		}
	}

	// One curve per well-formed parent link. Malformed links (parent at
	// the same or a deeper generation) get no edge and are reported.
	for _, r := range retained {
		if r.ParentID == "" {
			continue
		}
		parent, ok := f.Record(r.ParentID)
		if !ok {
			continue
		}
		start, placed := positions[parent.ID]
		if !placed || parent.Generation >= r.Generation {
			continue
		}
		res.Edges = append(res.Edges, curve(parent.ID, r, start, positions[r.ID], opts))
	}

	for _, id := range f.Malformed() {
		if _, ok := retainedSet[id]; ok {
			res.Anomalies = append(res.Anomalies, id)
		}
	}

	return res
}

// bandIndex maps each distinct generation to a contiguous 0-based band.
func bandIndex(records []Record) map[int]int {
	seen := make(map[int]struct{})
	for _, r := range records {
		seen[r.Generation] = struct{}{}
	}
	gens := make([]int, 0, len(seen))
	for g := range seen {
		gens = append(gens, g)
	}
	slices.Sort(gens)

	depthOf := make(map[int]int, len(gens))
	for i, g := range gens {
		depthOf[g] = i
	}
	return depthOf
}

// placeBand assigns X coordinates to every record in one band.
//
// Records are ordered by their parent's already-assigned X (0 when the
// parent is absent or not yet placed), distributed evenly between the
// margins, then nudged toward the parent. The sort is stable so equal
// parent positions keep input order, which keeps the layout deterministic.
func placeBand(band []Record, y float64, opts Options, positions map[string]Point) {
	ordered := slices.Clone(band)
	parentX := func(r Record) float64 {
		if r.ParentID == "" {
			return 0
		}
		p, ok := positions[r.ParentID]
		if !ok {
			return 0
		}
		return p.X
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return parentX(ordered[i]) < parentX(ordered[j])
	})

	span := opts.Width - 2*opts.MarginX
	for i, r := range ordered {
		var ideal float64
		if len(ordered) == 1 {
			ideal = opts.Width / 2
		} else {
			ideal = opts.MarginX + span*float64(i)/float64(len(ordered)-1)
		}

		// Nudge only toward parents in a strictly shallower band; a
		// malformed same-band parent leaves the node at its band-only
		// fallback position.
		x := ideal
		if p, ok := positions[r.ParentID]; ok && r.ParentID != "" && p.Y < y {
			x = ideal*(1-parentPull) + p.X*parentPull
		}
		positions[r.ID] = Point{X: x, Y: y}
	}
}

// curve builds the cubic connective edge for one parent-child pair.
func curve(parentID string, child Record, start, end Point, opts Options) Edge {
	midY := (start.Y + end.Y) / 2
	wobble := (child.Fitness - 0.5) * opts.WobbleScale
	return Edge{
		From:   parentID,
		To:     child.ID,
		Start:  start,
		C1:     Point{X: start.X + wobble, Y: midY - opts.CurveOffset},
		C2:     Point{X: end.X + wobble, Y: midY + opts.CurveOffset},
		End:    end,
		Wobble: wobble,
	}
}
