package timeline

import (
	"time"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/instant"
)

// Event is one row of a timeline. Start and End take any value accepted by
// instant.Parse. An event without End is a point event.
type Event struct {
	Start any    `json:"start" yaml:"start" toml:"start"`
	End   any    `json:"end,omitempty" yaml:"end,omitempty" toml:"end,omitempty"`
	Label string `json:"label" yaml:"label" toml:"label"`
	// Color overrides Options.Data.Color for this row.
	Color string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// resolved is an event with parsed instants.
type resolved struct {
	index  int
	label  string
	color  string
	start  time.Time
	end    time.Time
	hasEnd bool // explicit end
}

// last is the instant the event reaches, for visibility and line drawing.
func (r resolved) last() time.Time {
	if r.end.IsZero() {
		return r.start
	}
	return r.end
}

func resolveEvents(events []Event, opts Options, loc *time.Location) ([]resolved, error) {
	out := make([]resolved, 0, len(events))
	var now time.Time
	for i, raw := range events {
		e := opts.mapItem(raw)

		start, err := instant.Parse(e.Start, loc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDate, err, "event %d: start", i)
		}
		if start.IsZero() {
			return nil, errors.New(errors.ErrCodeInvalidDate, "event %d: missing start", i)
		}
		end, err := instant.Parse(e.End, loc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDate, err, "event %d: end", i)
		}
		if err := errors.ValidateLabel(e.Label); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "event %d", i)
		}
		if err := errors.ValidateColor(e.Color); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "event %d", i)
		}

		r := resolved{index: i, label: e.Label, color: e.Color, start: start, end: end, hasEnd: !end.IsZero()}
		if !r.hasEnd && opts.Ongoing {
			if now.IsZero() {
				now = opts.now()
			}
			if now.After(start) {
				r.end = now
			}
		}
		if r.hasEnd && end.Before(start) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "event %d: end %s before start %s",
				i, end.Format(time.RFC3339), start.Format(time.RFC3339))
		}
		out = append(out, r)
	}
	return out, nil
}
