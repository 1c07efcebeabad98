package pipeline

import (
	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/instant"
	"github.com/matzehuels/timeline/pkg/scale"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// ScaleRequest asks which tick intervals a period gets at a given width.
type ScaleRequest struct {
	Start any
	End   any
	// Width is the surface width including margins.
	Width float64
	// LabelWidth overrides the measured width of one tick label.
	LabelWidth float64
	// FillFactor overrides Timeline.Scale.FillFactor.
	FillFactor float64
	Timeline   timeline.Options
}

// ScaleResult is the planned axis.
type ScaleResult struct {
	Span       scale.Span      `json:"span"`
	Spec       scale.TickSpec  `json:"spec"`
	Major      string          `json:"major"`
	Minor      string          `json:"minor,omitempty"`
	LabelWidth float64         `json:"label_width"`
	DrawWidth  float64         `json:"draw_width"`
	Ticks      []timeline.Tick `json:"ticks"`
}

// PlanScale lays out an empty timeline over the requested period and
// reports the chosen scale. Both ends of the period are required.
func PlanScale(req ScaleRequest) (*ScaleResult, error) {
	if req.Start == nil || req.End == nil {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "scale needs both start and end")
	}
	if req.Width == 0 {
		req.Width = DefaultWidth
	}
	opts, err := timeline.WithDefaults(req.Timeline)
	if err != nil {
		return nil, err
	}
	opts.Start, opts.End = req.Start, req.End
	if req.FillFactor != 0 {
		opts.Scale.FillFactor = req.FillFactor
	}

	l, err := timeline.BuildLayout(req.Width, nil, opts)
	if err != nil {
		return nil, err
	}
	if l.Span == nil {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "no period to plan")
	}

	res := &ScaleResult{
		Span:       *l.Span,
		Spec:       l.Spec,
		LabelWidth: l.LabelWidth,
		DrawWidth:  l.DrawRight - l.DrawLeft,
		Ticks:      l.Major,
	}
	if req.LabelWidth > 0 && l.HasScale() {
		res.LabelWidth = req.LabelWidth
		res.Spec = scale.PlanWithOverride(*l.Span, res.DrawWidth, req.LabelWidth,
			opts.Scale.FillFactor, opts.Scale.MajorTicks, opts.Scale.MinorTicks)
		res.Ticks = res.Ticks[:0:0]
		for _, t := range scale.Ticks(*l.Span, res.Spec.Major) {
			res.Ticks = append(res.Ticks, timeline.Tick{Time: t, X: l.X(t), Label: instant.FormatTime(t, opts.Scale.Format)})
		}
	}
	if res.Spec.Major > 0 {
		res.Major = res.Spec.MajorDuration().String()
	}
	if res.Spec.HasMinor() {
		res.Minor = res.Spec.MinorDuration().String()
	}
	return res, nil
}
