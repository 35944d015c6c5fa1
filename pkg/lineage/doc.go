// Package lineage models the mutation lineage of an evolutionary search
// run and computes its tree layout.
//
// A run is a flat set of parent-referencing records forming a forest: one
// or more rooted trees, one root per seed candidate. The package provides
// three things:
//
//   - Forest: an arena of records indexed by ID, with child and
//     generation indices and structural validation
//   - Layout: generation-band 2D positions plus cubic connective curves
//     between parents and children
//   - AncestorPath: the bounded walk from any record back to its root
//
// # Forest invariant
//
// Every parent link must point at a record with a strictly smaller
// generation index. Input that violates this is still accepted: the
// offending records are reported by [Forest.Malformed], laid out at
// band-only fallback positions, and surfaced as anomalies so callers can
// flag them instead of silently misrepresenting the lineage.
//
// # Determinism
//
// All computations are pure functions of their input. Repeated calls on
// identical input produce bit-identical output; there is no randomness
// and no internal state between calls.
package lineage
