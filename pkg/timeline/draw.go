package timeline

import (
	"os"
	"sync"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/svg"
)

// tickStrokeWidth is the stroke of major and minor ticks; Scale.Width
// only applies to the baseline.
const tickStrokeWidth = 2

var (
	regularOnce sync.Once
	regular     *svg.FontMeasurer
	regularErr  error
)

// defaultMeasurer loads fontFile, or shares one Go Regular measurer.
func defaultMeasurer(fontFile string) (svg.Measurer, error) {
	if fontFile != "" {
		data, err := os.ReadFile(fontFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read font %s", fontFile)
		}
		return svg.NewFontMeasurer(data)
	}
	regularOnce.Do(func() {
		regular, regularErr = svg.NewFontMeasurer(nil)
	})
	if regularErr != nil {
		return nil, regularErr
	}
	return regular, nil
}

// Render lays out and draws events on a surface width pixels wide. opts go
// through WithDefaults first.
func Render(width float64, events []Event, opts Options) (*svg.Document, error) {
	opts, err := WithDefaults(opts)
	if err != nil {
		return nil, err
	}
	l, err := BuildLayout(width, events, opts)
	if err != nil {
		return nil, err
	}
	return Draw(l, opts), nil
}

// Draw turns a layout into an SVG document. The element order is major
// ticks, minor ticks, baseline, then one group per visible row.
func Draw(l Layout, opts Options) *svg.Document {
	doc := svg.NewDocument(l.Width, l.Height)
	if l.Span == nil {
		return doc
	}

	if l.HasScale() {
		tickAttrs := svg.Attrs{"stroke": opts.Scale.Color, "stroke-width": tickStrokeWidth}
		textAttrs := svg.Attrs{
			"fill":        opts.Scale.Color,
			"font-size":   opts.Scale.FontSize,
			"text-anchor": "middle",
		}
		if opts.Scale.FontFamily != "" {
			textAttrs["font-family"] = opts.Scale.FontFamily
		}

		y1 := l.Top
		y2 := l.Top + opts.Scale.MajorTickLength
		for _, t := range l.Major {
			doc.Append(svg.Group(svg.Attrs{"class": "major"},
				svg.Line(t.X, y1, t.X, y2, tickAttrs),
				svg.Text(t.X, y1-2, t.Label, textAttrs),
			))
		}
		for _, t := range l.Minor {
			doc.Append(svg.Line(t.X, y2-opts.Scale.MinorTickLength, t.X, y2,
				svg.Attrs{"class": "minor", "stroke": opts.Scale.Color, "stroke-width": tickStrokeWidth}))
		}
		doc.Append(svg.Line(l.DrawLeft, l.Baseline, l.DrawRight, l.Baseline,
			svg.Attrs{"class": "baseline", "stroke": opts.Scale.Color, "stroke-width": opts.Scale.Width}))
	}

	for _, r := range l.Rows {
		if !r.Visible {
			continue
		}
		g := svg.Group(svg.Attrs{"class": "event"})
		label := svg.Attrs{
			"fill":              r.Color,
			"font-size":         opts.Data.FontSize,
			"text-anchor":       "end",
			"dominant-baseline": "middle",
		}
		if opts.Data.FontFamily != "" {
			label["font-family"] = opts.Data.FontFamily
		}
		g.Append(svg.Text(r.X1-opts.Data.Width*2-opts.Data.Offset, r.Y, r.Label, label))
		if r.StartBullet {
			g.Append(svg.Circle(r.X1, r.Y, opts.Data.BulletRadius, svg.Attrs{"fill": r.Color}))
		}
		if r.Line {
			g.Append(svg.Line(r.X1, r.Y, r.X2, r.Y, svg.Attrs{"stroke": r.Color, "stroke-width": opts.Data.Width}))
		}
		if r.EndBullet {
			g.Append(svg.Circle(r.X2, r.Y, opts.Data.BulletRadius, svg.Attrs{"fill": r.Color}))
		}
		doc.Append(g)
	}
	return doc
}
