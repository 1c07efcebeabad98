// Package pipeline runs the load → layout → render steps shared by the CLI
// and the HTTP server.
//
// A [Runner] executes the steps with a cache in front of layout and
// rendering:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "events.yaml",
//	    Width:   900,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Steps can also run on their own: [Runner.Load], [Runner.ComputeLayout]
// and [Runner.Render].
package pipeline

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeline/pkg/errors"
	eventio "github.com/matzehuels/timeline/pkg/io"
	"github.com/matzehuels/timeline/pkg/sink"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// DefaultWidth is the surface width when none is given.
const DefaultWidth = 800.0

// Options configure one pipeline run. The struct doubles as the JSON body
// of the render endpoint.
type Options struct {
	// Input is an event file; it is read when Events is empty.
	Input string `json:"-"`
	// InputFormat overrides the format derived from Input's extension.
	InputFormat string `json:"-"`
	// Events are used as given when non-empty.
	Events []timeline.Event `json:"events"`

	Width    float64          `json:"width,omitempty"`
	Timeline timeline.Options `json:"options"`

	Formats []string `json:"formats,omitempty"`
	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is the outcome of a pipeline run.
type Result struct {
	Events    []timeline.Event
	Layout    timeline.Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timing and size information.
type Stats struct {
	EventCount int
	Visible    int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which steps were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// ValidateFormats checks every name in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := sink.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults fills defaults and checks the options. Calling it
// again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "width must be positive, got %v", o.Width)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{string(sink.FormatSVG)}
	}
	o.Formats = slices.Clone(o.Formats)
	for i, f := range o.Formats {
		parsed, err := sink.ParseFormat(f)
		if err != nil {
			return err
		}
		o.Formats[i] = string(parsed)
	}
	if o.InputFormat != "" {
		if _, err := eventio.ParseFormat(o.InputFormat); err != nil {
			return err
		}
	}

	merged, err := timeline.WithDefaults(o.Timeline)
	if err != nil {
		return err
	}
	if err := merged.Validate(); err != nil {
		return err
	}
	o.Timeline = merged
	o.validated = true
	return nil
}

// cacheable reports whether the layout depends only on serializable inputs.
func (o Options) cacheable() bool {
	return o.Timeline.MapItem == nil && !o.Timeline.Ongoing && o.Timeline.Measurer == nil && o.Timeline.FontFile == ""
}
