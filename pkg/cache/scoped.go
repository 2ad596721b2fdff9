package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each deployment or tenant
// its own key namespace in a shared backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FrameKey generates a prefixed frame key.
func (k *ScopedKeyer) FrameKey(dataHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(dataHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(frameHash, opts)
}
