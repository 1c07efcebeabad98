// Package sink encodes timeline layouts as SVG, PNG, PDF or JSON.
//
// SVG is produced in-process. PNG and PDF are converted from the SVG by
// rsvg-convert, which must be on PATH (brew install librsvg, apt install
// librsvg2-bin). JSON exports the computed geometry for other tools.
//
// [FileContainer] is a timeline.Container that keeps the current drawing
// in an SVG file, for watch-style workflows.
package sink
