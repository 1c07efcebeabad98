package sink

import (
	"context"

	"github.com/matzehuels/timeline/pkg/timeline"
)

// RenderPDF renders the layout as a single-page PDF via SVG conversion.
func RenderPDF(ctx context.Context, l timeline.Layout, opts timeline.Options, sopts ...SVGOption) ([]byte, error) {
	return ToPDF(ctx, RenderSVG(l, opts, sopts...))
}
