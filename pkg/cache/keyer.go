package cache

// LayoutKeyOpts are the inputs besides the events that change a layout.
type LayoutKeyOpts struct {
	Width float64 `json:"width"`
	// Options is a stable encoding of the timeline options.
	Options string `json:"options"`
}

// ArtifactKeyOpts select the encoding of a layout.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(eventsHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) LayoutKey(eventsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", eventsHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
