package svg

import (
	"bytes"
	"io"
)

// Document is a complete SVG drawing rooted at an <svg> element.
type Document struct {
	root *Element
}

// NewDocument creates an empty drawing of the given size.
func NewDocument(width, height float64) *Document {
	root := &Element{Tag: "svg"}
	root.Set("xmlns", Namespace).
		Set("version", "1.1").
		Set("width", width).
		Set("height", height)
	return &Document{root: root}
}

// Root returns the <svg> element.
func (d *Document) Root() *Element { return d.root }

// Width returns the drawing width.
func (d *Document) Width() float64 { return d.root.Float("width") }

// Height returns the drawing height.
func (d *Document) Height() float64 { return d.root.Float("height") }

// SetHeight changes the drawing height.
func (d *Document) SetHeight(h float64) { d.root.Set("height", h) }

// Append adds elements to the drawing.
func (d *Document) Append(elems ...*Element) { d.root.Append(elems...) }

// Elements returns the top-level elements.
func (d *Document) Elements() []*Element { return d.root.Children }

// Find returns all elements with the given tag.
func (d *Document) Find(tag string) []*Element { return d.root.Find(tag) }

// WriteTo encodes the drawing to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) { return d.root.WriteTo(w) }

// Bytes returns the encoded drawing.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = d.WriteTo(&buf)
	return buf.Bytes()
}

// Clone returns a deep copy of the drawing.
func (d *Document) Clone() *Document {
	return &Document{root: d.root.Clone()}
}
