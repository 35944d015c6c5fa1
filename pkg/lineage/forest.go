package lineage

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidRecordID is returned by [NewForest] when a record ID is empty.
	// All records must have non-empty identifiers.
	ErrInvalidRecordID = errors.New("record ID must not be empty")

	// ErrDuplicateRecordID is returned by [NewForest] when two records share
	// the same ID. Record IDs must be unique across the whole run.
	ErrDuplicateRecordID = errors.New("duplicate record ID")

	// ErrNegativeGeneration is returned by [NewForest] when a record carries
	// a negative generation index. Generation 0 is the seed generation.
	ErrNegativeGeneration = errors.New("generation index must not be negative")

	// ErrRecordNotFound is returned by [Forest.AncestorPath] when the target
	// ID does not match any record in the forest.
	ErrRecordNotFound = errors.New("record not found")

	// ErrLineageCycle is returned by [Forest.AncestorPath] when following
	// parent links revisits a record. A cycle violates the forest invariant
	// and would otherwise loop forever.
	ErrLineageCycle = errors.New("lineage contains a parent cycle")
)

// Origin tags how a record was produced by the search process.
// It is purely descriptive and never enters layout math.
type Origin string

// Origin kinds.
const (
	OriginInitial   Origin = "initial"
	OriginMutation  Origin = "mutation"
	OriginCrossover Origin = "crossover"
	OriginSelection Origin = "selection"
)

// Record is one evaluated candidate in a search lineage.
//
// ParentID is empty for seed (generation 0) records. When set, it must
// reference a record with a strictly smaller generation index - violations
// are tolerated at construction and reported by [Forest.Malformed].
type Record struct {
	ID         string  // Unique identifier
	Generation int     // Generation index (0 = seed)
	ParentID   string  // Parent record ID, empty for roots
	Origin     Origin  // How this record was produced
	Fitness    float64 // Scalar fitness, conventionally in [0,1], higher is better
	Delta      float64 // Signed fitness change relative to the parent
}

// IsRoot reports whether the record has no parent link.
func (r Record) IsRoot() bool { return r.ParentID == "" }

// Forest is an arena of lineage records indexed by ID.
//
// Parent links are resolved by ID lookup, never by embedded references, so
// the structure stays a plain value store even when the input violates the
// forest invariant. Forest is immutable after construction and therefore
// safe for concurrent readers.
type Forest struct {
	records  []Record
	index    map[string]int
	children map[string][]string // parent ID -> child IDs in input order
}

// NewForest builds a forest from a flat record set.
//
// The input order is preserved; layout tie-breaking depends on it. Returns
// ErrInvalidRecordID, ErrDuplicateRecordID, or ErrNegativeGeneration for
// structurally unusable input. Generation-order violations between parent
// and child are accepted here and surfaced by [Forest.Malformed], so a
// partially broken run can still be laid out.
func NewForest(records []Record) (*Forest, error) {
	f := &Forest{
		records:  slices.Clone(records),
		index:    make(map[string]int, len(records)),
		children: make(map[string][]string),
	}

	for i, r := range f.records {
		if r.ID == "" {
			return nil, ErrInvalidRecordID
		}
		if r.Generation < 0 {
			return nil, ErrNegativeGeneration
		}
		if _, exists := f.index[r.ID]; exists {
			return nil, ErrDuplicateRecordID
		}
		f.index[r.ID] = i
	}

	for _, r := range f.records {
		if r.ParentID != "" {
			f.children[r.ParentID] = append(f.children[r.ParentID], r.ID)
		}
	}

	return f, nil
}

// Len returns the number of records in the forest.
func (f *Forest) Len() int { return len(f.records) }

// Record returns the record with the given ID and true, or a zero record
// and false if not found.
func (f *Forest) Record(id string) (Record, bool) {
	i, ok := f.index[id]
	if !ok {
		return Record{}, false
	}
	return f.records[i], true
}

// Records returns a copy of all records in input order.
func (f *Forest) Records() []Record { return slices.Clone(f.records) }

// Children returns the IDs of records that reference id as their parent,
// in input order. The returned slice should not be modified.
func (f *Forest) Children(id string) []string { return f.children[id] }

// ChildCount returns the number of records that reference id as their parent.
func (f *Forest) ChildCount(id string) int { return len(f.children[id]) }

// Roots returns all records with no parent link, in input order.
func (f *Forest) Roots() []Record {
	var roots []Record
	for _, r := range f.records {
		if r.IsRoot() {
			roots = append(roots, r)
		}
	}
	return roots
}

// Generations returns the distinct generation indices present in the
// forest, sorted ascending. Generations need not be contiguous - a run
// with records in generations 0 and 5 returns [0, 5].
func (f *Forest) Generations() []int {
	seen := make(map[int]struct{})
	for _, r := range f.records {
		seen[r.Generation] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Generation returns all records with the given generation index, in
// input order.
func (f *Forest) Generation(gen int) []Record {
	var out []Record
	for _, r := range f.records {
		if r.Generation == gen {
			out = append(out, r)
		}
	}
	return out
}

// Malformed returns the IDs of records whose parent link violates the
// forest invariant: the parent exists but its generation index is not
// strictly smaller than the child's. Dangling parent references are not
// reported - a missing parent terminates a chain without making it
// malformed.
//
// Since generation indices strictly decrease along every clean parent
// chain, any ID cycle necessarily contains at least one link reported
// here, so an empty result also guarantees the forest is acyclic.
//
// The result is sorted for deterministic output.
func (f *Forest) Malformed() []string {
	var bad []string
	for _, r := range f.records {
		if r.ParentID == "" {
			continue
		}
		parent, ok := f.Record(r.ParentID)
		if !ok {
			continue
		}
		if parent.Generation >= r.Generation {
			bad = append(bad, r.ID)
		}
	}
	slices.Sort(bad)
	return bad
}

// Validate checks the forest invariant and returns ErrLineageCycle if any
// parent link is malformed. Use [Forest.Malformed] to obtain the full set
// of offending IDs for partial-failure handling.
func (f *Forest) Validate() error {
	if bad := f.Malformed(); len(bad) > 0 {
		return ErrLineageCycle
	}
	return nil
}
