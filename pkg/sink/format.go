package sink

import (
	"context"
	"strings"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// Format is an output encoding.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists every supported output format.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ParseFormat validates a format name; empty means SVG.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatSVG, nil
	}
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (want svg, png, pdf or json)", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "image/svg+xml"
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Encode renders the layout in format f.
func Encode(ctx context.Context, f Format, l timeline.Layout, opts timeline.Options) ([]byte, error) {
	switch f {
	case FormatSVG, "":
		return RenderSVG(l, opts), nil
	case FormatPNG:
		return RenderPNG(ctx, l, opts)
	case FormatPDF:
		return RenderPDF(ctx, l, opts)
	case FormatJSON:
		data, err := RenderJSON(l, WithJSONOptions(opts))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
		}
		return data, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", f)
}
