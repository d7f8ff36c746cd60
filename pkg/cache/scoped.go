package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The HTTP host scopes keys per deployment so several hosts can share one
// Redis instance.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "sankey:staging:")
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

// SnapshotKey generates a prefixed key for snapshot caching.
func (k *ScopedKeyer) SnapshotKey(contentHash string, opts SnapshotKeyOpts) string {
	return k.prefix + k.inner.SnapshotKey(contentHash, opts)
}

// FrameKey generates a prefixed key for frame caching.
func (k *ScopedKeyer) FrameKey(snapshotHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(snapshotHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(frameKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(frameKey, opts)
}
