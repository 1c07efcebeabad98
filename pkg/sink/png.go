package sink

import (
	"context"

	"github.com/matzehuels/timeline/pkg/timeline"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the SVG step.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the layout as PNG via SVG conversion. PNGs get a white
// background unless the SVG options set one.
func RenderPNG(ctx context.Context, l timeline.Layout, opts timeline.Options, popts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, o := range popts {
		o(&r)
	}
	svgOpts := append([]SVGOption{WithBackground("white")}, r.svgOpts...)
	return ToPNG(ctx, RenderSVG(l, opts, svgOpts...), r.scale)
}
