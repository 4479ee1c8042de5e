package cache

// ScopedKeyer wraps a Keyer with a prefix. Servers sharing one Redis
// instance across environments or schema versions use it to keep their
// entries apart:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v2:")
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(kind, diagramHash, configHash string) string {
	return k.prefix + k.inner.LayoutKey(kind, diagramHash, configHash)
}
