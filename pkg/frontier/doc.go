// Package frontier analyzes the multi-objective trade-off space of an
// evolutionary search run.
//
// Two pure functions cover the quality/speed/complexity space:
//
//   - Optimal computes true Pareto-optimality over the sample set
//   - Reconstruct builds a regular-grid fitness surface from the
//     scattered samples via inverse-distance weighting
//
// Both are deterministic, allocate only their results, and may be called
// concurrently on independent inputs.
package frontier
