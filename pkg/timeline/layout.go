package timeline

import (
	"time"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/instant"
	"github.com/matzehuels/timeline/pkg/scale"
	"github.com/matzehuels/timeline/pkg/svg"
)

// Tick is a scale mark at X.
type Tick struct {
	Time  time.Time `json:"time"`
	X     float64   `json:"x"`
	Label string    `json:"label,omitempty"`
}

// Row is the geometry of one event. Rows outside the period are kept with
// Visible false so row positions match the input order.
type Row struct {
	Index   int     `json:"index"`
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Y       float64 `json:"y"`
	X1      float64 `json:"x1"`
	X2      float64 `json:"x2"`
	Visible bool    `json:"visible"`
	// StartBullet and EndBullet are set when the respective instant is inside the period.
	StartBullet bool `json:"start_bullet,omitempty"`
	EndBullet   bool `json:"end_bullet,omitempty"`
	// Line is set for events with an extent that reaches into the period.
	Line bool `json:"line,omitempty"`
}

// Layout is a fully computed timeline, ready to be drawn.
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Span is nil when no period could be resolved; nothing but the empty
	// surface is drawn then.
	Span *scale.Span    `json:"span,omitempty"`
	Spec scale.TickSpec `json:"spec"`

	DrawLeft   float64 `json:"draw_left"`
	DrawRight  float64 `json:"draw_right"`
	Top        float64 `json:"top"`
	Baseline   float64 `json:"baseline"`
	LabelWidth float64 `json:"label_width"`
	LineHeight float64 `json:"line_height"`

	Major []Tick `json:"major,omitempty"`
	Minor []Tick `json:"minor,omitempty"`
	Rows  []Row  `json:"rows,omitempty"`
}

// X maps t onto the horizontal axis. Every instant maps to DrawLeft when
// the span has no extent.
func (l Layout) X(t time.Time) float64 {
	if l.Span == nil || l.Span.IsZero() {
		return l.DrawLeft
	}
	frac := instant.Between(l.Span.Start, t) / instant.Between(l.Span.Start, l.Span.End)
	return l.DrawLeft + (l.DrawRight-l.DrawLeft)*frac
}

// HasScale reports whether the axis is drawn.
func (l Layout) HasScale() bool {
	return l.Span != nil && !l.Span.IsZero()
}

// BuildLayout computes the geometry for events on a surface width pixels
// wide. opts should already carry defaults; see WithDefaults.
func BuildLayout(width float64, events []Event, opts Options) (Layout, error) {
	if width <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidContainer, "container width must be positive, got %v", width)
	}
	if err := opts.Validate(); err != nil {
		return Layout{}, err
	}
	loc, err := opts.location()
	if err != nil {
		return Layout{}, err
	}
	logger := opts.tracer()

	l := Layout{
		Width:     width,
		DrawLeft:  opts.Margin.Left,
		DrawRight: width - opts.Margin.Right,
		Top:       opts.Margin.Top,
	}
	if l.DrawRight <= l.DrawLeft {
		return Layout{}, errors.New(errors.ErrCodeInvalidOptions,
			"container width %v leaves no room between margins %v and %v", width, opts.Margin.Left, opts.Margin.Right)
	}

	rows, err := resolveEvents(events, opts, loc)
	if err != nil {
		return Layout{}, err
	}

	span, ok, err := resolveSpan(opts, rows, loc)
	if err != nil {
		return Layout{}, err
	}
	if !ok {
		if logger != nil {
			logger.Debug("no period to display", "events", len(rows))
		}
		l.Height = opts.Margin.Top + opts.Margin.Bottom
		return l, nil
	}
	l.Span = &span

	m := opts.Measurer
	if m == nil {
		if m, err = defaultMeasurer(opts.FontFile); err != nil {
			return Layout{}, err
		}
	}

	label, err := m.Measure(instant.FormatTime(span.Start.In(loc), opts.Scale.Format), opts.Scale.FontSize)
	if err != nil {
		return Layout{}, err
	}
	l.LabelWidth = label.Width

	l.LineHeight = opts.Data.LineHeight
	if l.LineHeight <= 0 {
		if l.LineHeight, err = svg.LineHeight(m, opts.Data.FontSize); err != nil {
			return Layout{}, err
		}
	}

	y := opts.Margin.Top
	if l.HasScale() {
		l.Spec = scale.PlanWithOverride(span, l.DrawRight-l.DrawLeft, l.LabelWidth,
			opts.Scale.FillFactor, opts.Scale.MajorTicks, opts.Scale.MinorTicks)
		if logger != nil {
			logger.Debug("planned scale", "start", span.Start, "end", span.End,
				"label_width", l.LabelWidth, "spec", l.Spec.String())
		}
		for _, t := range scale.Ticks(span, l.Spec.Major) {
			l.Major = append(l.Major, Tick{Time: t, X: l.X(t), Label: instant.FormatTime(t.In(loc), opts.Scale.Format)})
		}
		if l.Spec.HasMinor() {
			for _, t := range scale.Ticks(span, l.Spec.Minor) {
				l.Minor = append(l.Minor, Tick{Time: t, X: l.X(t)})
			}
		}
	} else if logger != nil {
		logger.Debug("period has no extent, skipping scale", "at", span.Start)
	}

	y += opts.Scale.MajorTickLength
	l.Baseline = y
	y += opts.Scale.Width/2 + opts.Scale.BottomMargin

	for _, r := range rows {
		row := Row{Index: r.index, Label: r.label, Color: r.color, Y: y}
		if row.Color == "" {
			row.Color = opts.Data.Color
		}
		if !r.start.After(span.End) && !r.last().Before(span.Start) {
			row.Visible = true
			row.X1 = l.X(span.Clamp(r.start))
			row.X2 = l.X(span.Clamp(r.last()))
			row.StartBullet = span.Contains(r.start)
			row.EndBullet = r.hasEnd && span.Contains(r.end)
			row.Line = !r.end.IsZero()
		} else if logger != nil {
			logger.Debug("event outside period", "index", r.index, "label", r.label)
		}
		l.Rows = append(l.Rows, row)
		y += l.LineHeight
	}

	l.Height = y + opts.Margin.Bottom
	return l, nil
}

// resolveSpan parses the configured period and fills unset sides from the
// earliest start and the latest start or end of the events.
func resolveSpan(opts Options, rows []resolved, loc *time.Location) (scale.Span, bool, error) {
	start, err := instant.Parse(opts.Start, loc)
	if err != nil {
		return scale.Span{}, false, errors.Wrap(errors.ErrCodeInvalidOptions, err, "period start")
	}
	end, err := instant.Parse(opts.End, loc)
	if err != nil {
		return scale.Span{}, false, errors.Wrap(errors.ErrCodeInvalidOptions, err, "period end")
	}

	if start.IsZero() || end.IsZero() {
		var lo, hi time.Time
		for _, r := range rows {
			if lo.IsZero() || r.start.Before(lo) {
				lo = r.start
			}
			if hi.IsZero() || r.start.After(hi) {
				hi = r.start
			}
			if r.hasEnd && r.end.After(hi) {
				hi = r.end
			}
		}
		if start.IsZero() {
			start = lo
		}
		if end.IsZero() {
			end = hi
		}
	}

	if start.IsZero() || end.IsZero() {
		return scale.Span{}, false, nil
	}
	if end.Before(start) {
		return scale.Span{}, false, errors.New(errors.ErrCodeInvalidOptions, "period end %s before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return scale.Span{Start: start, End: end}, true, nil
}
