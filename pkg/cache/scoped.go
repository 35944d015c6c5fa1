package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several projects or users share one cache backend and need
// separate key spaces.
//
// Example usage:
//
//	// User-specific keys for private runs
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared runs
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ViewKey generates a prefixed key for view caching.
func (k *ScopedKeyer) ViewKey(runHash string, opts ViewKeyOpts) string {
	return k.prefix + k.inner.ViewKey(runHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(viewHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(viewHash, opts)
}
