package frontier

// Point is one sample in the multi-objective trade-off space.
//
// Quality and Speed are maximize-better objectives; Complexity is a cost
// to minimize. Fitness is the combined scalar computed by the external
// search process - it is carried through for surface reconstruction but
// never enters dominance checks.
type Point struct {
	ID         string
	Quality    float64
	Speed      float64
	Complexity float64
	Fitness    float64
}

// Dominates reports whether p dominates q: p is at least as good as q on
// all three objectives and strictly better on at least one. Two points
// with identical scores on every axis do not dominate each other.
func Dominates(p, q Point) bool {
	if p.Quality < q.Quality || p.Speed < q.Speed || p.Complexity > q.Complexity {
		return false
	}
	return p.Quality > q.Quality || p.Speed > q.Speed || p.Complexity < q.Complexity
}

// Optimal returns the IDs of all Pareto-optimal points: those not
// dominated by any other point in the set.
//
// The comparison is pairwise O(n²), which is deterministic and fast
// enough for the interactive sizes this package targets (low thousands
// of points). The result is invariant under input reordering. Any
// optimality flag computed upstream must be ignored in favor of this
// result.
func Optimal(points []Point) map[string]bool {
	optimal := make(map[string]bool, len(points))
	for i, p := range points {
		dominated := false
		for j, q := range points {
			if i == j {
				continue
			}
			if Dominates(q, p) {
				dominated = true
				break
			}
		}
		if !dominated {
			optimal[p.ID] = true
		}
	}
	return optimal
}
