package cache

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for the layout of a diagram of the given
	// kind. diagramHash and configHash identify the exact inputs.
	LayoutKey(kind, diagramHash, configHash string) string
}

// DefaultKeyer produces keys of the form "layout:<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(kind, diagramHash, configHash string) string {
	return digestKey("layout:"+kind, diagramHash, configHash)
}

var _ Keyer = DefaultKeyer{}
