package svg

// Line creates a line from (x1, y1) to (x2, y2).
func Line(x1, y1, x2, y2 float64, attrs Attrs) *Element {
	e := &Element{Tag: "line"}
	e.Set("x1", x1).Set("y1", y1).Set("x2", x2).Set("y2", y2)
	return e.SetAll(attrs)
}

// Circle creates a circle centered at (cx, cy).
func Circle(cx, cy, r float64, attrs Attrs) *Element {
	e := &Element{Tag: "circle"}
	e.Set("cx", cx).Set("cy", cy).Set("r", r)
	return e.SetAll(attrs)
}

// Rect creates a rectangle with its top-left corner at (x, y).
func Rect(x, y, width, height float64, attrs Attrs) *Element {
	e := &Element{Tag: "rect"}
	e.Set("x", x).Set("y", y).Set("width", width).Set("height", height)
	return e.SetAll(attrs)
}

// Text creates a text element anchored at (x, y).
func Text(x, y float64, text string, attrs Attrs) *Element {
	e := &Element{Tag: "text", Text: text}
	e.Set("x", x).Set("y", y)
	return e.SetAll(attrs)
}

// Group creates a <g> container.
func Group(attrs Attrs, children ...*Element) *Element {
	return NewElement("g", attrs).Append(children...)
}
