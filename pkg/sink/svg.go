package sink

import (
	"github.com/matzehuels/timeline/pkg/svg"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	title      string
	viewBox    bool
}

// WithBackground fills the surface with color behind everything else.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithTitle adds a <title> element, shown as a tooltip by browsers.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithViewBox adds a viewBox so the drawing scales with its box.
func WithViewBox() SVGOption { return func(r *svgRenderer) { r.viewBox = true } }

// RenderSVG draws the layout and returns the encoded document.
func RenderSVG(l timeline.Layout, opts timeline.Options, sopts ...SVGOption) []byte {
	return Document(l, opts, sopts...).Bytes()
}

// Document draws the layout with the given decorations.
func Document(l timeline.Layout, opts timeline.Options, sopts ...SVGOption) *svg.Document {
	var r svgRenderer
	for _, o := range sopts {
		o(&r)
	}

	doc := timeline.Draw(l, opts)
	root := doc.Root()
	if r.viewBox {
		root.Set("viewBox", "0 0 "+svg.FormatNumber(l.Width)+" "+svg.FormatNumber(l.Height))
	}

	var front []*svg.Element
	if r.title != "" {
		front = append(front, &svg.Element{Tag: "title", Text: r.title})
	}
	if r.background != "" {
		front = append(front, svg.Rect(0, 0, l.Width, l.Height, svg.Attrs{"fill": r.background}))
	}
	if len(front) > 0 {
		root.Children = append(front, root.Children...)
	}
	return doc
}
