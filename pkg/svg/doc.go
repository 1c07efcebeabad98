// Package svg builds SVG drawings as in-memory element trees.
//
// A timeline is drawn from a handful of primitives: lines, circles,
// rectangles and text. This package constructs them as [Element] values
// with ordered attribute lists so that serialization is deterministic and
// two identical drawings always produce identical bytes. Nothing is written
// anywhere until the finished [Document] is encoded, which makes it cheap to
// build a drawing off to the side and swap it in atomically.
//
// # Building
//
//	doc := svg.NewDocument(600, 120)
//	doc.Append(
//	    svg.Line(50, 40, 550, 40, svg.Attrs{"stroke": "#808080", "stroke-width": 4}),
//	    svg.Circle(120, 70, 4, svg.Attrs{"fill": "#008000"}),
//	    svg.Text(110, 70, "Deploy", svg.Attrs{"text-anchor": "end"}),
//	)
//	out := doc.Bytes()
//
// # Text Measurement
//
// Layout needs to know how wide a label will be before it is drawn. A
// [FontMeasurer] answers that with real glyph metrics from an OpenType font
// (Go Regular by default), the server-side stand-in for a browser's getBBox.
package svg
