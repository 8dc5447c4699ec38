package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants or profiles can
// share a backend without key collisions.
//
// Example usage:
//
//	// Per-studio keys on a shared redis
//	studio := NewScopedKeyer(NewDefaultKeyer(), "studio:atelier-nord:")
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

// DraftKey generates a prefixed draft key.
func (k *ScopedKeyer) DraftKey(inputs DraftKeyOpts) string {
	return k.prefix + k.inner.DraftKey(inputs)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(draftHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(draftHash, opts)
}

// IndexKey generates a prefixed draft-ID key.
func (k *ScopedKeyer) IndexKey(id string) string {
	return k.prefix + k.inner.IndexKey(id)
}
