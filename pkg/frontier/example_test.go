package frontier_test

import (
	"fmt"
	"slices"

	"github.com/matzehuels/evoscape/pkg/frontier"
)

func ExampleOptimal() {
	points := []frontier.Point{
		{ID: "fast", Quality: 0.3, Speed: 0.9, Complexity: 0.5},
		{ID: "accurate", Quality: 0.9, Speed: 0.3, Complexity: 0.5},
		{ID: "mediocre", Quality: 0.2, Speed: 0.2, Complexity: 0.8},
	}

	optimal := frontier.Optimal(points)

	ids := make([]string, 0, len(optimal))
	for id := range optimal {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Println("Pareto-optimal:", ids)
	// Output:
	// Pareto-optimal: [accurate fast]
}

func ExampleReconstruct() {
	points := []frontier.Point{
		{ID: "a", Quality: 0.2, Speed: 0.2, Complexity: 0.1, Fitness: 0.3},
		{ID: "b", Quality: 0.8, Speed: 0.8, Complexity: 0.9, Fitness: 0.7},
	}

	samples := frontier.Reconstruct(points, 2)

	fmt.Println("Samples:", len(samples))
	for _, s := range samples {
		fmt.Printf("cell (%d, %d) center (%.2f, %.2f)\n", s.GridX, s.GridZ, s.X, s.Z)
	}
	// Output:
	// Samples: 4
	// cell (0, 0) center (0.25, 0.25)
	// cell (1, 0) center (0.75, 0.25)
	// cell (0, 1) center (0.25, 0.75)
	// cell (1, 1) center (0.75, 0.75)
}
