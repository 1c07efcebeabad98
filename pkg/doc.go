// Package pkg provides the libraries behind the timeline renderer.
//
// # Overview
//
// A timeline is a horizontal time axis with adaptive tick spacing and one
// row per event below it. Point events draw a bullet, interval events a
// line with bullets at the ends that fall inside the displayed period.
//
// # Architecture
//
// The data flow through a render:
//
//	events (JSON / YAML / CSV / Go values)
//	         ↓
//	    [instant] parse dates, [io] read event files
//	         ↓
//	    [scale] choose major/minor intervals for the period and width
//	         ↓
//	    [timeline] compute the layout and draw an [svg] document
//	         ↓
//	    [sink] SVG, PNG, PDF or JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/timeline/pkg/timeline"
//	)
//
//	opts := timeline.DefaultOptions()
//	opts.Scale.Format = "DD.MM."
//	doc, err := timeline.Render(900, []timeline.Event{
//	    {Start: "2024-03-01", End: "2024-03-15", Label: "Beta"},
//	    {Start: "2024-04-02", Label: "Launch"},
//	}, opts)
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(doc.Bytes())
//
// For a long-lived widget that re-renders on every data or period change,
// use [timeline.New] with a [timeline.Container].
//
// # Main Packages
//
// ## Core
//
// [instant] - Date parsing (strings, epoch milliseconds, [y, m, d] triples,
// {year, month, day} objects) and the label pattern language (YYYY, MM, DD,
// hh, mm, ss).
//
// [scale] - The interval ladder and the planner that picks the smallest
// major interval leaving room for its labels.
//
// [timeline] - Options, layout and drawing. [timeline.BuildLayout] is pure
// geometry; [timeline.Draw] turns a layout into an SVG document.
//
// [svg] - A small SVG element tree with deterministic serialization and text
// measurement through golang.org/x/image.
//
// ## Input & Output
//
// [io] - Event file import and export (JSON, YAML, CSV).
//
// [sink] - Output encoders. PNG and PDF go through rsvg-convert.
//
// ## Infrastructure
//
// [pipeline] - The load → layout → render steps shared by the CLI and the
// HTTP server, with caching of layouts and artifacts.
//
// [cache] - File, Redis and null caches plus key derivation.
//
// [config] - TOML and YAML configuration with environment overrides.
//
// [errors] - Coded errors shared across packages.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test ./pkg/scale/...              # Specific package
//	go test -run Example ./pkg/...       # Examples only
//	TIMELINE_TEST_REDIS_URL=redis://localhost:6379/15 go test ./pkg/cache/
//
// [instant]: https://pkg.go.dev/github.com/matzehuels/timeline/pkg/instant
// [scale]: https://pkg.go.dev/github.com/matzehuels/timeline/pkg/scale
// [timeline]: https://pkg.go.dev/github.com/matzehuels/timeline/pkg/timeline
// [svg]: https://pkg.go.dev/github.com/matzehuels/timeline/pkg/svg
// [io]: https://pkg.go.dev/github.com/matzehuels/timeline/pkg/io
// [sink]: https://pkg.go.dev/github.com/matzehuels/timeline/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/timeline/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/timeline/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/timeline/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/timeline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/timeline/pkg/observability
package pkg
