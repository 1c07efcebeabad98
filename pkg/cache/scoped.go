package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis database:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "timeline:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(eventsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(eventsHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
