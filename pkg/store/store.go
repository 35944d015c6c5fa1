// Package store provides persistence for computed views.
//
// A store maps a user-chosen name to the latest computed view for that
// run, so expensive recomputation can be skipped and views can be shared
// between machines. Implementations:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for shared deployments
//
// Stored views are treated as immutable snapshots: Put replaces the whole
// record, there is no partial update.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/evoscape/pkg/run"
)

// ErrNotFound is returned by Get when no view is stored under the name.
var ErrNotFound = errors.New("view not found")

// Record is one stored view with its provenance.
type Record struct {
	// Name is the user-chosen identifier for the run.
	Name string `json:"name" bson:"name"`

	// RunHash is the SHA-256 of the run data the view was computed from.
	// Callers compare it against fresh input to detect stale views.
	RunHash string `json:"run_hash" bson:"run_hash"`

	// CreatedAt is when the view was computed.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// View is the computed result.
	View run.View `json:"view" bson:"view"`
}

// Store persists computed views by name.
type Store interface {
	// Put stores a record, replacing any existing record with the same name.
	Put(ctx context.Context, rec Record) error

	// Get returns the record stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) (Record, error)

	// Delete removes the record stored under name. Deleting a missing
	// name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored records, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
