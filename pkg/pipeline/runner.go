package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeline/pkg/cache"
	"github.com/matzehuels/timeline/pkg/errors"
	eventio "github.com/matzehuels/timeline/pkg/io"
	"github.com/matzehuels/timeline/pkg/observability"
	"github.com/matzehuels/timeline/pkg/sink"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// Runner executes pipeline runs against a cache. It holds no per-run state,
// so one Runner serves concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses the default keyer, a nil
// cache disables caching and a nil logger uses log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	result := &Result{}

	loadStart := time.Now()
	events, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Events = events
	result.Stats.EventCount = len(events)
	result.Stats.LoadTime = time.Since(loadStart)

	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, events, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	for _, row := range layout.Rows {
		if row.Visible {
			result.Stats.Visible++
		}
	}
	opts.Logger.Info("computed layout",
		"events", len(events),
		"visible", result.Stats.Visible,
		"scale", layout.Spec.String(),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns opts.Events, or reads opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (events []timeline.Event, err error) {
	if len(opts.Events) > 0 || opts.Input == "" {
		return opts.Events, nil
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()
	defer func() { hooks.OnLoadComplete(ctx, opts.Input, len(events), time.Since(start), err) }()

	if opts.InputFormat == "" && opts.Input != "-" {
		return eventio.ImportEvents(opts.Input)
	}
	if opts.InputFormat == "" {
		opts.InputFormat = string(eventio.FormatJSON)
	}
	format, err := eventio.ParseFormat(opts.InputFormat)
	if err != nil {
		return nil, err
	}
	return importAs(opts.Input, format)
}

// ComputeLayoutWithCacheInfo lays out events, consulting the cache unless
// the options make the layout uncacheable.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, events []timeline.Event, opts Options) (timeline.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return timeline.Layout{}, false, err
	}
	r.applyLogger(&opts)
	lopts := opts.Timeline
	lopts.Logger = opts.Logger

	var key string
	if opts.cacheable() {
		var err error
		if key, err = r.layoutKey(events, opts); err != nil {
			opts.Logger.Debug("layout not cacheable", "err", err)
		}
	}
	if key != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached timeline.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(events))
	start := time.Now()
	layout, err := timeline.BuildLayout(opts.Width, events, lopts)
	hooks.OnLayoutComplete(ctx, time.Since(start), err)
	if err != nil {
		return timeline.Layout{}, false, err
	}

	if key != "" {
		if data, err := json.Marshal(layout); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
				opts.Logger.Warn("cache write failed", "type", "layout", "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}
	return layout, false, nil
}

// ComputeLayout is ComputeLayoutWithCacheInfo without the cache flag.
func (r *Runner) ComputeLayout(ctx context.Context, events []timeline.Event, opts Options) (timeline.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, events, opts)
	return l, err
}

// RenderWithCacheInfo encodes the layout in every requested format. The
// cache counts as hit only when all formats were found.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout timeline.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := json.Marshal(layout)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	styleData, err := json.Marshal(opts.Timeline)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize options for cache key")
	}
	layoutHash := cache.Hash(append(layoutData, styleData...))

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, f := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{Format: f})
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[f] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := renderAll(ctx, layout, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for f, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{Format: f})
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "type", "artifact", "format", f, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache flag.
func (r *Runner) Render(ctx context.Context, layout timeline.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) layoutKey(events []timeline.Event, opts Options) (string, error) {
	eventsHash, err := cache.HashJSON(events)
	if err != nil {
		return "", err
	}
	optData, err := json.Marshal(opts.Timeline)
	if err != nil {
		return "", err
	}
	return r.Keyer.LayoutKey(eventsHash, cache.LayoutKeyOpts{Width: opts.Width, Options: string(optData)}), nil
}

func renderAll(ctx context.Context, layout timeline.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, name := range opts.Formats {
		f, err := sink.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		data, err := sink.Encode(ctx, f, layout, opts.Timeline)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		artifacts[name] = data
	}
	return artifacts, nil
}
