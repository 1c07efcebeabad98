package sink

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/timeline/pkg/scale"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// JSONOption configures JSON rendering.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	options  *timeline.Options
	elements bool
}

// WithJSONOptions records the render options in the output.
func WithJSONOptions(opts timeline.Options) JSONOption {
	return func(r *jsonRenderer) { r.options = &opts }
}

// WithJSONElements includes the SVG element tree.
func WithJSONElements() JSONOption { return func(r *jsonRenderer) { r.elements = true } }

type jsonOutput struct {
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Span       *jsonSpan         `json:"span,omitempty"`
	Spec       scale.TickSpec    `json:"spec"`
	DrawLeft   float64           `json:"draw_left"`
	DrawRight  float64           `json:"draw_right"`
	Top        float64           `json:"top"`
	Baseline   float64           `json:"baseline"`
	LabelWidth float64           `json:"label_width"`
	LineHeight float64           `json:"line_height"`
	Major      []timeline.Tick   `json:"major"`
	Minor      []timeline.Tick   `json:"minor,omitempty"`
	Rows       []timeline.Row    `json:"rows"`
	Options    *timeline.Options `json:"options,omitempty"`
	Elements   any               `json:"elements,omitempty"`
}

type jsonSpan struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration float64   `json:"duration"`
}

// RenderJSON exports the computed layout as pretty-printed JSON. Hidden
// rows are included so row indices match the input.
func RenderJSON(l timeline.Layout, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, o := range opts {
		o(&r)
	}

	out := jsonOutput{
		Width:      l.Width,
		Height:     l.Height,
		Spec:       l.Spec,
		DrawLeft:   l.DrawLeft,
		DrawRight:  l.DrawRight,
		Top:        l.Top,
		Baseline:   l.Baseline,
		LabelWidth: l.LabelWidth,
		LineHeight: l.LineHeight,
		Major:      l.Major,
		Minor:      l.Minor,
		Rows:       l.Rows,
		Options:    r.options,
	}
	if out.Major == nil {
		out.Major = []timeline.Tick{}
	}
	if out.Rows == nil {
		out.Rows = []timeline.Row{}
	}
	if l.Span != nil {
		out.Span = &jsonSpan{Start: l.Span.Start, End: l.Span.End, Duration: l.Span.Duration()}
	}
	if r.elements && r.options != nil {
		out.Elements = timeline.Draw(l, *r.options).Elements()
	}
	return json.MarshalIndent(out, "", "  ")
}
