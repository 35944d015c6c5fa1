package lineage

import "fmt"

// AncestorPath returns the chain of record IDs from targetID to its root,
// inclusive of both ends.
//
// The walk follows parent links until it reaches a record with no parent
// or a parent ID that matches no record (a broken link terminates the path
// without error). A visited set bounds the walk: if a parent chain revisits
// a record, the input violates the forest invariant and ErrLineageCycle is
// returned instead of looping forever.
//
// Returns ErrRecordNotFound if targetID matches no record.
func (f *Forest) AncestorPath(targetID string) ([]string, error) {
	rec, ok := f.Record(targetID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRecordNotFound, targetID)
	}

	path := []string{rec.ID}
	visited := map[string]struct{}{rec.ID: {}}

	for rec.ParentID != "" {
		if _, seen := visited[rec.ParentID]; seen {
			return nil, fmt.Errorf("%w: revisited %q resolving path for %q", ErrLineageCycle, rec.ParentID, targetID)
		}
		parent, ok := f.Record(rec.ParentID)
		if !ok {
			break // dangling link, path ends at the last known record
		}
		path = append(path, parent.ID)
		visited[parent.ID] = struct{}{}
		rec = parent
	}

	return path, nil
}
