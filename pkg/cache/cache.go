// Package cache provides content-addressed caching for pipeline results.
//
// Every cache key is derived from a SHA-256 hash of the run data plus the
// computation parameters, so a cache hit is always byte-identical to a
// fresh computation. Backends cover the CLI (file), server deployments
// (Redis), and disabled caching (null).
package cache

import (
	"context"
	"time"
)

// TTLs per content type. Views and artifacts are pure functions of their
// key, so the TTL only bounds disk usage, never staleness.
const (
	TTLView     = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage backend interface.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// errors are reserved for backend failures. A ttl of zero means no
// expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ViewKeyOpts carries every parameter that changes a computed view.
type ViewKeyOpts struct {
	Width          float64
	Height         float64
	MaxDepth       int
	GridResolution int
	WobbleScale    float64
	MarginX        float64
}

// ArtifactKeyOpts carries the parameters that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string
	Detailed bool
}

// Keyer generates cache keys for the pipeline's content types.
type Keyer interface {
	// ViewKey generates a key for a computed view, derived from the hash
	// of the run data and every layout/surface parameter.
	ViewKey(runHash string, opts ViewKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived from
	// the hash of the view it was rendered from.
	ArtifactKey(viewHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ViewKey generates a cache key for a computed view.
func (k *DefaultKeyer) ViewKey(runHash string, opts ViewKeyOpts) string {
	return hashKey("view", runHash, opts)
}

// ArtifactKey generates a cache key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(viewHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", viewHash, opts)
}
