package run

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/evoscape/pkg/errors"
	"github.com/matzehuels/evoscape/pkg/frontier"
	"github.com/matzehuels/evoscape/pkg/lineage"
)

// =============================================================================
// Run - Search Run Serialization
// =============================================================================

// Run is the canonical serialization format for evolutionary search run
// data: the mutation lineage plus the multi-objective sample set.
// Used for file input, caching, and the view store.
//
// The format is human-readable and designed for round-trip fidelity:
// import → compute → export → re-import produces identical results.
type Run struct {
	Records []Record `json:"records" bson:"records"`
	Points  []Point  `json:"points" bson:"points"`
}

// Record is one evaluated candidate in the search lineage.
type Record struct {
	ID         string  `json:"id" bson:"id"`
	Generation int     `json:"generation" bson:"generation"`
	ParentID   string  `json:"parent_id,omitempty" bson:"parent_id,omitempty"` // Empty for seed records
	Origin     string  `json:"origin,omitempty" bson:"origin,omitempty"`       // initial, mutation, crossover, selection
	Fitness    float64 `json:"fitness" bson:"fitness"`
	Delta      float64 `json:"fitness_delta,omitempty" bson:"fitness_delta,omitempty"`
}

// Point is one sample in the quality/speed/complexity trade-off space.
//
// Optimal may arrive pre-set from upstream data; it is display data only.
// The pipeline always recomputes optimality via the dominance engine and
// ignores this flag for anything correctness-sensitive.
type Point struct {
	ID         string  `json:"id" bson:"id"`
	Quality    float64 `json:"quality" bson:"quality"`
	Speed      float64 `json:"speed" bson:"speed"`
	Complexity float64 `json:"complexity" bson:"complexity"`
	Fitness    float64 `json:"fitness" bson:"fitness"`
	Optimal    bool    `json:"optimal,omitempty" bson:"optimal,omitempty"`
}

// =============================================================================
// Conversion to Core Types
// =============================================================================

// Forest builds the lineage forest from the run's records.
func (r Run) Forest() (*lineage.Forest, error) {
	records := make([]lineage.Record, len(r.Records))
	for i, rec := range r.Records {
		records[i] = lineage.Record{
			ID:         rec.ID,
			Generation: rec.Generation,
			ParentID:   rec.ParentID,
			Origin:     lineage.Origin(rec.Origin),
			Fitness:    rec.Fitness,
			Delta:      rec.Delta,
		}
	}
	return lineage.NewForest(records)
}

// FrontierPoints converts the run's samples to dominance-engine points.
func (r Run) FrontierPoints() []frontier.Point {
	points := make([]frontier.Point, len(r.Points))
	for i, p := range r.Points {
		points[i] = frontier.Point{
			ID:         p.ID,
			Quality:    p.Quality,
			Speed:      p.Speed,
			Complexity: p.Complexity,
			Fitness:    p.Fitness,
		}
	}
	return points
}

// Validate checks that all record and point IDs are usable and unique.
// An empty run is valid - every downstream component defines empty-input
// behavior explicitly.
func (r Run) Validate() error {
	seen := make(map[string]struct{}, len(r.Records))
	for _, rec := range r.Records {
		if err := errors.ValidateRecordID(rec.ID); err != nil {
			return err
		}
		if rec.Generation < 0 {
			return errors.New(errors.ErrCodeInvalidRun, "record %s has negative generation %d", rec.ID, rec.Generation)
		}
		if _, dup := seen[rec.ID]; dup {
			return errors.New(errors.ErrCodeInvalidRun, "duplicate record ID %q", rec.ID)
		}
		seen[rec.ID] = struct{}{}
	}

	seenPoints := make(map[string]struct{}, len(r.Points))
	for _, p := range r.Points {
		if err := errors.ValidateRecordID(p.ID); err != nil {
			return err
		}
		if _, dup := seenPoints[p.ID]; dup {
			return errors.New(errors.ErrCodeInvalidRun, "duplicate point ID %q", p.ID)
		}
		seenPoints[p.ID] = struct{}{}
	}

	return nil
}

// =============================================================================
// Run Serialization API
// =============================================================================

// MarshalRun serializes a Run to pretty-printed JSON bytes.
func MarshalRun(r Run) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalRun deserializes JSON bytes into a Run and validates it.
func UnmarshalRun(data []byte) (Run, error) {
	var r Run
	if err := json.Unmarshal(data, &r); err != nil {
		return Run{}, fmt.Errorf("unmarshal run: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Run{}, err
	}
	return r, nil
}

// ReadRun reads a Run from r.
func ReadRun(rd io.Reader) (Run, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}
	return UnmarshalRun(data)
}

// ReadRunFile reads a Run from a JSON file.
func ReadRunFile(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalRun(data)
}

// WriteRunFile writes a Run to a JSON file.
func WriteRunFile(r Run, path string) error {
	data, err := MarshalRun(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
