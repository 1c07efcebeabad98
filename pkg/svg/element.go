package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Namespace is the SVG XML namespace.
const Namespace = "http://www.w3.org/2000/svg"

// Attr is a single attribute. Value is already formatted.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attrs is a convenience set of attributes; keys are applied in sorted order.
type Attrs map[string]any

// Element is a node of an SVG drawing.
type Element struct {
	Tag      string     `json:"tag"`
	Attrs    []Attr     `json:"attrs,omitempty"`
	Text     string     `json:"text,omitempty"`
	Children []*Element `json:"children,omitempty"`
}

// NewElement creates an element with the given tag and attributes.
func NewElement(tag string, attrs Attrs) *Element {
	e := &Element{Tag: tag}
	e.SetAll(attrs)
	return e
}

// Set assigns an attribute, replacing an existing value in place.
func (e *Element) Set(name string, value any) *Element {
	v := FormatValue(value)
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = v
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: v})
	return e
}

// SetAll assigns every attribute in attrs, in key order.
func (e *Element) SetAll(attrs Attrs) *Element {
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		e.Set(k, attrs[k])
	}
	return e
}

// Attr returns the formatted value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Float returns a numeric attribute, or NaN if it is missing or not a number.
func (e *Element) Float(name string) float64 {
	v, ok := e.Attr(name)
	if !ok {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Append adds children to the element.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Find returns all descendants (including e itself) with the given tag, in document order.
func (e *Element) Find(tag string) []*Element {
	var out []*Element
	e.walk(func(n *Element) {
		if n.Tag == tag {
			out = append(out, n)
		}
	})
	return out
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.walk(fn)
	}
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	c := &Element{Tag: e.Tag, Text: e.Text, Attrs: slices.Clone(e.Attrs)}
	for _, ch := range e.Children {
		c.Children = append(c.Children, ch.Clone())
	}
	return c
}

// encode writes the element as XML, indenting children by depth.
func (e *Element) encode(w *bytes.Buffer, depth int) {
	indent := strings.Repeat("  ", depth)
	w.WriteString(indent)
	w.WriteByte('<')
	w.WriteString(e.Tag)
	for _, a := range e.Attrs {
		fmt.Fprintf(w, ` %s="%s"`, a.Name, EscapeXML(a.Value))
	}

	switch {
	case len(e.Children) > 0:
		w.WriteString(">\n")
		if e.Text != "" {
			w.WriteString(indent + "  " + EscapeXML(e.Text) + "\n")
		}
		for _, c := range e.Children {
			c.encode(w, depth+1)
		}
		fmt.Fprintf(w, "%s</%s>\n", indent, e.Tag)
	case e.Text != "":
		fmt.Fprintf(w, ">%s</%s>\n", EscapeXML(e.Text), e.Tag)
	default:
		w.WriteString("/>\n")
	}
}

// WriteTo encodes the element tree to w.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	e.encode(&buf, 0)
	return buf.WriteTo(w)
}

// EscapeXML escapes text for use in XML character data and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// FormatValue formats an attribute value. Floats are rounded to three
// decimals with trailing zeros removed so output stays compact and stable.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return FormatNumber(x)
	case float32:
		return FormatNumber(float64(x))
	case int:
		return strconv.Itoa(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// FormatNumber renders f with at most three decimals.
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	r := math.Round(f*1000) / 1000
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
