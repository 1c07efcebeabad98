package timeline

import (
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/svg"
)

// Timeline is a live drawing bound to a container. Every mutation redraws
// the whole surface off to the side and swaps it in with one Replace call,
// so the container never holds a partial drawing. A Timeline is safe for
// concurrent use.
type Timeline struct {
	mu        sync.Mutex
	container Container
	opts      Options
	data      []Event
	surface   *svg.Document
	layout    Layout
	logger    *log.Logger
}

// New binds a timeline to container and draws the empty surface. Unset
// fields of partial opts take their defaults, see WithDefaults. New fails when the container is missing or
// text cannot be measured.
func New(container Container, opts Options) (*Timeline, error) {
	if container == nil {
		return nil, errors.New(errors.ErrCodeInvalidContainer, "container is required")
	}
	if w := container.Width(); w <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidContainer, "container width must be positive, got %v", w)
	}
	merged, err := WithDefaults(opts)
	if err != nil {
		return nil, err
	}
	if merged.Measurer == nil {
		m, err := defaultMeasurer(merged.FontFile)
		if err != nil {
			return nil, err
		}
		merged.Measurer = m
	}
	t := &Timeline{container: container, opts: merged, logger: merged.tracer()}
	t.debug("created", "width", container.Width())
	if err := t.Refresh(); err != nil {
		return nil, err
	}
	return t, nil
}

// SetData replaces the events and redraws. On failure the previous data
// and drawing stay in place.
func (t *Timeline) SetData(events []Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.debug("set data", "events", len(events))
	prev := t.data
	t.data = slices.Clone(events)
	if err := t.refresh(); err != nil {
		t.data = prev
		return err
	}
	return nil
}

// SetPeriod pins the displayed period and redraws. A nil side is derived
// from the data. On failure the previous period stays in place.
func (t *Timeline) SetPeriod(start, end any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.debug("set period", "start", start, "end", end)
	prevStart, prevEnd := t.opts.Start, t.opts.End
	t.opts.Start, t.opts.End = start, end
	if err := t.refresh(); err != nil {
		t.opts.Start, t.opts.End = prevStart, prevEnd
		return err
	}
	return nil
}

// Refresh redraws the surface from the current data, period and container width.
func (t *Timeline) Refresh() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refresh()
}

func (t *Timeline) refresh() error {
	l, err := BuildLayout(t.container.Width(), t.data, t.opts)
	if err != nil {
		return err
	}
	doc := Draw(l, t.opts)
	if err := t.container.Replace(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "attach surface")
	}
	t.surface = doc
	t.layout = l
	t.debug("refreshed", "width", l.Width, "height", l.Height, "rows", len(l.Rows))
	return nil
}

func (t *Timeline) debug(msg string, keyvals ...any) {
	if t.logger != nil {
		t.logger.Debug(msg, keyvals...)
	}
}

// Surface returns the current drawing.
func (t *Timeline) Surface() *svg.Document {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.surface
}

// Layout returns the geometry of the current drawing.
func (t *Timeline) Layout() Layout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.layout
}

// Options returns a copy of the effective options.
func (t *Timeline) Options() Options {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opts
}

// Data returns a copy of the current events.
func (t *Timeline) Data() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.data)
}
