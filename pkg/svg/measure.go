package svg

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/timeline/pkg/errors"
)

const (
	pxPerPt  = 96.0 / 72.0
	pxPerEm  = 16.0
	fontDPI  = 72
	probeTxt = "gyMI"
)

// Dimension is the extent of rendered text in pixels.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurer reports the pixel extent of text at a font size.
type Measurer interface {
	Measure(text, fontSize string) (Dimension, error)
}

// FontMeasurer measures text with the glyph metrics of an OpenType font.
// It is safe for concurrent use; faces are cached per pixel size.
type FontMeasurer struct {
	font  *opentype.Font
	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFontMeasurer parses ttf (TrueType or OpenType data). A nil ttf selects
// the bundled Go Regular font. Parse failures are UNSUPPORTED errors: without
// metrics there is nothing to lay text out with.
func NewFontMeasurer(ttf []byte) (*FontMeasurer, error) {
	if ttf == nil {
		ttf = goregular.TTF
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "text measurement unavailable: parse font")
	}
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// Measure returns the advance width and the ascent+descent height of text.
func (m *FontMeasurer) Measure(text, fontSize string) (Dimension, error) {
	px, err := ParseFontSize(fontSize)
	if err != nil {
		return Dimension{}, err
	}
	face, err := m.face(px)
	if err != nil {
		return Dimension{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	metrics := face.Metrics()
	return Dimension{
		Width:  fixedToFloat(font.MeasureString(face, text)),
		Height: fixedToFloat(metrics.Ascent + metrics.Descent),
	}, nil
}

// LineHeight measures the height of a representative string with ascenders
// and descenders.
func LineHeight(m Measurer, fontSize string) (float64, error) {
	d, err := m.Measure(probeTxt, fontSize)
	return d.Height, err
}

func (m *FontMeasurer) face(px float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.faces[px]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    px,
		DPI:     fontDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "create font face at %gpx", px)
	}
	m.faces[px] = f
	return f, nil
}

// Close releases cached faces.
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, f := range m.faces {
		_ = f.Close()
		delete(m.faces, k)
	}
	return nil
}

// ParseFontSize converts a CSS font size ("12pt", "16px", "1.5em", "14") to pixels.
func ParseFontSize(size string) (float64, error) {
	if err := errors.ValidateFontSize(size); err != nil {
		return 0, err
	}
	s := strings.TrimSpace(size)
	scale := 1.0
	switch {
	case strings.HasSuffix(s, "pt"):
		s, scale = strings.TrimSuffix(s, "pt"), pxPerPt
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "em"):
		s, scale = strings.TrimSuffix(s, "em"), pxPerEm
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidOptions, "invalid font size: %q", size)
	}
	return v * scale, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

var _ Measurer = (*FontMeasurer)(nil)
