package frontier

import (
	"math"
	"reflect"
	"testing"
)

func TestReconstructEmpty(t *testing.T) {
	if got := Reconstruct(nil, 8); got != nil {
		t.Errorf("Reconstruct(nil) = %v, want nil", got)
	}
	points := []Point{{ID: "p", Quality: 0.5, Speed: 0.5}}
	if got := Reconstruct(points, 0); got != nil {
		t.Errorf("Reconstruct(resolution=0) = %v, want nil", got)
	}
	if got := Reconstruct(points, -3); got != nil {
		t.Errorf("Reconstruct(resolution=-3) = %v, want nil", got)
	}
}

func TestReconstructGridShape(t *testing.T) {
	points := []Point{
		{ID: "a", Quality: 0.2, Speed: 0.8, Complexity: 0.3, Fitness: 0.7},
		{ID: "b", Quality: 0.7, Speed: 0.1, Complexity: 0.6, Fitness: 0.4},
	}

	const res = 4
	samples := Reconstruct(points, res)

	if len(samples) != res*res {
		t.Fatalf("samples = %d, want %d", len(samples), res*res)
	}

	// Row-major: Z varies in the outer loop, X in the inner.
	for i, s := range samples {
		wantX, wantZ := i%res, i/res
		if s.GridX != wantX || s.GridZ != wantZ {
			t.Fatalf("sample %d at grid (%d, %d), want (%d, %d)", i, s.GridX, s.GridZ, wantX, wantZ)
		}
		if got := (float64(wantX) + 0.5) / res; s.X != got {
			t.Errorf("sample %d X = %g, want %g", i, s.X, got)
		}
		if got := (float64(wantZ) + 0.5) / res; s.Z != got {
			t.Errorf("sample %d Z = %g, want %g", i, s.Z, got)
		}
	}
}

func TestReconstructSinglePoint(t *testing.T) {
	// With one input point the weights cancel: every cell takes exactly
	// the point's complexity and fitness regardless of distance.
	p := Point{ID: "only", Quality: 0.3, Speed: 0.7, Complexity: 0.42, Fitness: 0.87}
	samples := Reconstruct([]Point{p}, 6)

	for _, s := range samples {
		if math.Abs(s.Height-p.Complexity) > 1e-12 {
			t.Fatalf("cell (%d, %d) height = %g, want %g", s.GridX, s.GridZ, s.Height, p.Complexity)
		}
		if math.Abs(s.Fitness-p.Fitness) > 1e-12 {
			t.Fatalf("cell (%d, %d) fitness = %g, want %g", s.GridX, s.GridZ, s.Fitness, p.Fitness)
		}
	}
}

func TestReconstructWeighting(t *testing.T) {
	// Two points at opposite corners: cells near one corner take values
	// close to that corner's point, and the midpoint splits evenly.
	low := Point{ID: "low", Quality: 0.0, Speed: 0.0, Complexity: 0.0, Fitness: 0.0}
	high := Point{ID: "high", Quality: 1.0, Speed: 1.0, Complexity: 1.0, Fitness: 1.0}
	samples := Reconstruct([]Point{low, high}, 9)

	var nearLow, center, nearHigh Sample
	for _, s := range samples {
		switch {
		case s.GridX == 0 && s.GridZ == 0:
			nearLow = s
		case s.GridX == 4 && s.GridZ == 4:
			center = s
		case s.GridX == 8 && s.GridZ == 8:
			nearHigh = s
		}
	}

	if nearLow.Fitness >= 0.5 {
		t.Errorf("corner near low point has fitness %g, want < 0.5", nearLow.Fitness)
	}
	if nearHigh.Fitness <= 0.5 {
		t.Errorf("corner near high point has fitness %g, want > 0.5", nearHigh.Fitness)
	}
	// Odd resolution puts a cell center exactly at (0.5, 0.5),
	// equidistant from both corner points.
	if math.Abs(center.Fitness-0.5) > 1e-12 {
		t.Errorf("center fitness = %g, want 0.5", center.Fitness)
	}
	if math.Abs(center.Height-0.5) > 1e-12 {
		t.Errorf("center height = %g, want 0.5", center.Height)
	}
}

func TestReconstructOutOfRangeValues(t *testing.T) {
	// Objectives outside [0,1] stay finite and well-defined.
	points := []Point{
		{ID: "wild", Quality: -2.5, Speed: 3.0, Complexity: 12.0, Fitness: -4.0},
	}
	samples := Reconstruct(points, 3)

	for _, s := range samples {
		if math.IsNaN(s.Height) || math.IsInf(s.Height, 0) {
			t.Fatalf("cell (%d, %d) height not finite: %g", s.GridX, s.GridZ, s.Height)
		}
		if math.IsNaN(s.Fitness) || math.IsInf(s.Fitness, 0) {
			t.Fatalf("cell (%d, %d) fitness not finite: %g", s.GridX, s.GridZ, s.Fitness)
		}
	}
}

func TestReconstructDeterministic(t *testing.T) {
	points := []Point{
		{ID: "a", Quality: 0.1, Speed: 0.9, Complexity: 0.2, Fitness: 0.8},
		{ID: "b", Quality: 0.6, Speed: 0.4, Complexity: 0.7, Fitness: 0.3},
		{ID: "c", Quality: 0.9, Speed: 0.2, Complexity: 0.5, Fitness: 0.6},
	}

	first := Reconstruct(points, 16)
	second := Reconstruct(points, 16)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different surfaces")
	}
}
