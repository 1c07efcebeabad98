package timeline

import (
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/svg"
)

// Margin is the space around the drawing area, in pixels.
type Margin struct {
	Left   float64 `json:"left,omitempty" yaml:"left,omitempty" toml:"left,omitempty"`
	Right  float64 `json:"right,omitempty" yaml:"right,omitempty" toml:"right,omitempty"`
	Top    float64 `json:"top,omitempty" yaml:"top,omitempty" toml:"top,omitempty"`
	Bottom float64 `json:"bottom,omitempty" yaml:"bottom,omitempty" toml:"bottom,omitempty"`
}

// ScaleOptions configure the time axis.
type ScaleOptions struct {
	// FillFactor is the share of the axis width labels may occupy.
	FillFactor float64 `json:"fill_factor,omitempty" yaml:"fill_factor,omitempty" toml:"fill_factor,omitempty"`
	// Format is the label pattern, see package instant.
	Format          string  `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	FontSize        string  `json:"font_size,omitempty" yaml:"font_size,omitempty" toml:"font_size,omitempty"`
	FontFamily      string  `json:"font_family,omitempty" yaml:"font_family,omitempty" toml:"font_family,omitempty"`
	Color           string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Width           float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	MajorTickLength float64 `json:"major_tick_length,omitempty" yaml:"major_tick_length,omitempty" toml:"major_tick_length,omitempty"`
	MinorTickLength float64 `json:"minor_tick_length,omitempty" yaml:"minor_tick_length,omitempty" toml:"minor_tick_length,omitempty"`
	BottomMargin    float64 `json:"bottom_margin,omitempty" yaml:"bottom_margin,omitempty" toml:"bottom_margin,omitempty"`
	// MajorTicks and MinorTicks force tick intervals in seconds; 0 plans them automatically.
	MajorTicks float64 `json:"major_ticks,omitempty" yaml:"major_ticks,omitempty" toml:"major_ticks,omitempty"`
	MinorTicks float64 `json:"minor_ticks,omitempty" yaml:"minor_ticks,omitempty" toml:"minor_ticks,omitempty"`
}

// DataOptions configure the event rows.
type DataOptions struct {
	// LineHeight is the row pitch; 0 measures it from the data font.
	LineHeight   float64 `json:"line_height,omitempty" yaml:"line_height,omitempty" toml:"line_height,omitempty"`
	Color        string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Width        float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	BulletRadius float64 `json:"bullet_radius,omitempty" yaml:"bullet_radius,omitempty" toml:"bullet_radius,omitempty"`
	Offset       float64 `json:"offset,omitempty" yaml:"offset,omitempty" toml:"offset,omitempty"`
	FontSize     string  `json:"font_size,omitempty" yaml:"font_size,omitempty" toml:"font_size,omitempty"`
	FontFamily   string  `json:"font_family,omitempty" yaml:"font_family,omitempty" toml:"font_family,omitempty"`
}

// Options configure a timeline. Start from [DefaultOptions] and set fields,
// zeros included, or pass partial options and let the zero fields take
// their defaults.
type Options struct {
	Margin Margin       `json:"margin" yaml:"margin" toml:"margin"`
	Scale  ScaleOptions `json:"scale" yaml:"scale" toml:"scale"`
	Data   DataOptions  `json:"data" yaml:"data" toml:"data"`

	// Start and End pin the displayed period. Any value accepted by
	// instant.Parse works; unset sides are derived from the data.
	Start any `json:"start,omitempty" yaml:"start,omitempty" toml:"start,omitempty"`
	End   any `json:"end,omitempty" yaml:"end,omitempty" toml:"end,omitempty"`

	// Location is the IANA zone used for parsing and labels ("UTC", "Local", "Europe/Berlin").
	Location string `json:"location,omitempty" yaml:"location,omitempty" toml:"location,omitempty"`

	// Ongoing extends events without an end up to Now.
	Ongoing bool `json:"ongoing,omitempty" yaml:"ongoing,omitempty" toml:"ongoing,omitempty"`

	// FontFile is a TrueType/OpenType file used for text measurement.
	FontFile string `json:"font_file,omitempty" yaml:"font_file,omitempty" toml:"font_file,omitempty"`

	// Debug traces rendering decisions at debug level.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty" toml:"debug,omitempty"`

	// MapItem transforms each event right before it is laid out.
	MapItem func(Event) Event `json:"-" yaml:"-" toml:"-"`

	// Now returns the current time for ongoing events.
	Now func() time.Time `json:"-" yaml:"-" toml:"-"`

	// Logger receives debug traces. Defaults to a stderr logger when Debug is set.
	Logger *log.Logger `json:"-" yaml:"-" toml:"-"`

	// Measurer sizes text. Defaults to the bundled Go Regular font or FontFile.
	Measurer svg.Measurer `json:"-" yaml:"-" toml:"-"`

	// complete marks options derived from DefaultOptions; their zero
	// fields are deliberate and are not filled in again.
	complete bool
}

// DefaultOptions returns a fresh copy of the default configuration.
func DefaultOptions() Options {
	return Options{
		Margin: Margin{Left: 50, Right: 50, Top: 20, Bottom: 10},
		Scale: ScaleOptions{
			FillFactor:      0.5,
			Format:          "hh:mm",
			FontSize:        "12pt",
			Color:           "#808080",
			Width:           4,
			MajorTickLength: 20,
			MinorTickLength: 10,
			BottomMargin:    20,
		},
		Data: DataOptions{
			Color:        "#008000",
			Width:        3,
			BulletRadius: 4,
			Offset:       5,
			FontSize:     "16pt",
		},
		Location: "UTC",
		complete: true,
	}
}

// Merge returns base with every non-zero field of override applied. Nested
// groups (Margin, Scale, Data) merge field by field, so overriding
// Scale.Color keeps the base Scale.Format. Neither argument is modified.
//
// Zero values in override never win; set such fields directly on the
// result. The result is complete when base is.
func Merge(base, override Options) (Options, error) {
	out := base
	if err := mergo.Merge(&out.Margin, override.Margin, mergo.WithOverride); err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidOptions, err, "merge margin options")
	}
	if err := mergo.Merge(&out.Scale, override.Scale, mergo.WithOverride); err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidOptions, err, "merge scale options")
	}
	if err := mergo.Merge(&out.Data, override.Data, mergo.WithOverride); err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidOptions, err, "merge data options")
	}

	if override.Start != nil {
		out.Start = override.Start
	}
	if override.End != nil {
		out.End = override.End
	}
	if override.Location != "" {
		out.Location = override.Location
	}
	if override.FontFile != "" {
		out.FontFile = override.FontFile
	}
	out.Ongoing = out.Ongoing || override.Ongoing
	out.Debug = out.Debug || override.Debug
	if override.MapItem != nil {
		out.MapItem = override.MapItem
	}
	if override.Now != nil {
		out.Now = override.Now
	}
	if override.Logger != nil {
		out.Logger = override.Logger
	}
	if override.Measurer != nil {
		out.Measurer = override.Measurer
	}
	return out, nil
}

// WithDefaults fills the unset fields of partial opts from DefaultOptions.
// Options built from DefaultOptions, a decoded config or an earlier call
// are returned as they are, so a Margin.Left of 0 set on them stays 0.
// When Debug is set without a Logger, the stderr trace logger is created
// here once.
func WithDefaults(opts Options) (Options, error) {
	out := opts
	if !opts.complete {
		var err error
		if out, err = Merge(DefaultOptions(), opts); err != nil {
			return opts, err
		}
	}
	if out.Debug && out.Logger == nil {
		out.Logger = out.tracer()
	}
	return out, nil
}

// Validate checks option values that would otherwise produce broken drawings.
func (o Options) Validate() error {
	for _, c := range []string{o.Scale.Color, o.Data.Color} {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	for _, s := range []string{o.Scale.FontSize, o.Data.FontSize} {
		if err := errors.ValidateFontSize(s); err != nil {
			return err
		}
	}
	if o.Scale.FillFactor <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "scale fill factor must be positive, got %v", o.Scale.FillFactor)
	}
	if o.Scale.MajorTicks < 0 || o.Scale.MinorTicks < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "tick intervals cannot be negative")
	}
	if o.Data.LineHeight < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "data line height cannot be negative")
	}
	if _, err := o.location(); err != nil {
		return err
	}
	return nil
}

// location resolves the configured zone; empty means UTC.
func (o Options) location() (*time.Location, error) {
	switch o.Location {
	case "", "UTC":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(o.Location)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOptions, err, "unknown location %q", o.Location)
	}
	return loc, nil
}

// now returns the configured clock reading.
func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// mapItem applies MapItem, or returns e unchanged.
func (o Options) mapItem(e Event) Event {
	if o.MapItem != nil {
		return o.MapItem(e)
	}
	return e
}

// tracer returns the logger debug traces go to, or nil when tracing is off.
func (o Options) tracer() *log.Logger {
	if !o.Debug {
		return nil
	}
	if o.Logger != nil {
		return o.Logger
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.DebugLevel,
		Prefix:          "timeline",
	})
}
