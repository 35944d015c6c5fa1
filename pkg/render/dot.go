package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/evoscape/pkg/run"
)

// Options configures lineage diagram rendering.
type Options struct {
	// Detailed includes generation, fitness, and child count in node
	// labels. When false, only the record ID is shown.
	Detailed bool
}

// ToDOT converts a view to Graphviz DOT format for lineage visualization.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Records in the same generation band share a rank so the diagram keeps
// the canvas layout's vertical structure. Pareto-optimal records are
// filled gold; anomalous records (malformed parent links) are outlined
// dashed red.
func ToDOT(v run.View, opts Options) string {
	frontier := make(map[string]bool, len(v.Frontier))
	for _, id := range v.Frontier {
		frontier[id] = true
	}
	anomalous := make(map[string]bool, len(v.Anomalies))
	for _, id := range v.Anomalies {
		anomalous[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range v.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(label, frontier[n.ID], anomalous[n.ID])
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, ids := range ranks(v.Nodes) {
		fmt.Fprintf(&buf, "  { rank=same; %s }\n", quoteJoin(ids))
	}

	buf.WriteString("\n")
	for _, e := range v.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n run.LayoutNode, detailed bool) string {
	if !detailed {
		return n.ID
	}

	parts := []string{
		fmt.Sprintf("gen: %d", n.Generation),
		fmt.Sprintf("fitness: %.3f", n.Fitness),
	}
	if n.ChildCount > 0 {
		parts = append(parts, fmt.Sprintf("children: %d", n.ChildCount))
	}

	return n.ID + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(label string, optimal, anomalous bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if optimal {
		attrs = append(attrs, "fillcolor=gold")
	}
	if anomalous {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "color=red")
	}
	return attrs
}

// ranks groups node IDs by band depth, ordered shallow to deep.
func ranks(nodes []run.LayoutNode) [][]string {
	byDepth := make(map[int][]string)
	for _, n := range nodes {
		byDepth[n.Depth] = append(byDepth[n.Depth], n.ID)
	}

	depths := make([]int, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	slices.Sort(depths)

	out := make([][]string, 0, len(depths))
	for _, d := range depths {
		out = append(out, byDepth[d])
	}
	return out
}

func quoteJoin(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = strconv.Quote(id)
	}
	return strings.Join(quoted, "; ")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or embedding.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
