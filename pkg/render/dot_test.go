package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/evoscape/pkg/run"
)

func testView() run.View {
	return run.View{
		Width:  800,
		Height: 600,
		Nodes: []run.LayoutNode{
			{ID: "seed", X: 400, Y: 0, Depth: 0, Generation: 0, ChildCount: 2, Fitness: 0.5},
			{ID: "m1", X: 184, Y: 600, Depth: 1, Generation: 1, Fitness: 0.9},
			{ID: "m2", X: 616, Y: 600, Depth: 1, Generation: 1, Fitness: 0.1},
		},
		Edges: []run.ConnectiveEdge{
			{From: "seed", To: "m1"},
			{From: "seed", To: "m2"},
		},
		Frontier:  []string{"m1"},
		Anomalies: []string{"m2"},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testView(), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB",
		`"seed" [label="seed"]`,
		`"seed" -> "m1";`,
		`"seed" -> "m2";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTRanks(t *testing.T) {
	dot := ToDOT(testView(), Options{})

	if !strings.Contains(dot, `{ rank=same; "seed" }`) {
		t.Errorf("DOT missing root rank:\n%s", dot)
	}
	if !strings.Contains(dot, `{ rank=same; "m1"; "m2" }`) {
		t.Errorf("DOT missing generation rank:\n%s", dot)
	}
}

func TestToDOTHighlights(t *testing.T) {
	dot := ToDOT(testView(), Options{})

	// Frontier member gets the gold fill
	if !strings.Contains(dot, `"m1" [label="m1", fillcolor=gold]`) {
		t.Errorf("frontier node not highlighted:\n%s", dot)
	}
	// Anomalous record gets the dashed red outline
	if !strings.Contains(dot, "dashed") || !strings.Contains(dot, "color=red") {
		t.Errorf("anomalous node not marked:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	tests := []struct {
		name     string
		detailed bool
		want     []string
		absent   []string
	}{
		{
			name:     "Simple",
			detailed: false,
			want:     []string{`label="seed"`},
			absent:   []string{"fitness:", "gen:"},
		},
		{
			name:     "Detailed",
			detailed: true,
			want:     []string{"gen: 0", "fitness: 0.500", "children: 2", "fitness: 0.900"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(testView(), Options{Detailed: tt.detailed})

			for _, want := range tt.want {
				if !strings.Contains(dot, want) {
					t.Errorf("DOT missing %q:\n%s", want, dot)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(dot, absent) {
					t.Errorf("DOT should not contain %q:\n%s", absent, dot)
				}
			}
		})
	}
}

func TestToDOTEmptyView(t *testing.T) {
	dot := ToDOT(run.View{}, Options{})

	if !strings.Contains(dot, "digraph G {") || !strings.Contains(dot, "}") {
		t.Errorf("empty view should still produce valid DOT:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("empty view should have no edges:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.50 50.25" xmlns="http://www.w3.org/2000/svg">`)
	got := string(normalizeViewBox(svg))

	if !strings.Contains(got, `viewBox="0 0 100.50 50.25"`) {
		t.Errorf("viewBox not normalized: %s", got)
	}
	if !strings.Contains(got, `width="100" height="50"`) {
		t.Errorf("dimensions not in px: %s", got)
	}

	// SVG without a viewBox passes through unchanged
	plain := []byte(`<svg>`)
	if string(normalizeViewBox(plain)) != `<svg>` {
		t.Error("svg without viewBox should pass through")
	}
}
