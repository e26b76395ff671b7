package cache

// ScopedKeyer wraps a Keyer with a prefix so several callers can share one
// backend without seeing each other's entries. The server scopes its keys
// this way when it shares a Redis instance with other deployments:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "school-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TimetableKey implements Keyer.
func (k *ScopedKeyer) TimetableKey(documentHash string, opts TimetableKeyOpts) string {
	return k.prefix + k.inner.TimetableKey(documentHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(timetableHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(timetableHash, opts)
}
