package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/pipeline"
	"github.com/matzehuels/timeline/pkg/sink"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output      string   // output file, base path for several formats, or "-" for stdout
	inputFormat string   // json, yaml or csv; derived from the extension when empty
	formats     []string // svg, png, pdf, json
	width       float64  // surface width in pixels
	start       string   // period start
	end         string   // period end
	pattern     string   // tick label pattern, e.g. "DD.MM.YYYY"
	location    string   // IANA zone for parsing and labels
	ongoing     bool     // extend open events to now
	debug       bool     // trace layout decisions
	noCache     bool
	refresh     bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [events-file]",
		Short: "Render an event file to SVG, PNG, PDF or JSON",
		Long: `Render reads events from a JSON, YAML or CSV file ("-" for stdin) and writes
one output file per requested format.

Each event needs a start and may carry an end, a label and a color:

  - start: 2024-03-01
    end: 2024-03-15
    label: Beta
  - start: 2024-04-02T10:00:00Z
    label: Launch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.formats = parseFormats(formatsStr, cfg.Render.Format)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) > 1 {
				return fmt.Errorf("stdout output takes a single format, got %d", len(opts.formats))
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (several formats) or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "event file format: json, yaml, csv (default: from extension)")
	cmd.Flags().Float64VarP(&opts.width, "width", "w", 0, "surface width in pixels (default from config, 800)")
	cmd.Flags().StringVar(&opts.start, "start", "", "period start (default: earliest event)")
	cmd.Flags().StringVar(&opts.end, "end", "", "period end (default: latest event)")
	cmd.Flags().StringVar(&opts.pattern, "format-pattern", "", "tick label pattern, e.g. \"DD.MM.YYYY\" or \"hh:mm\"")
	cmd.Flags().StringVar(&opts.location, "location", "", "time zone for parsing and labels, e.g. Europe/Berlin")
	cmd.Flags().BoolVar(&opts.ongoing, "ongoing", false, "extend events without an end up to now")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "trace layout decisions (with -v)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached output and re-render")

	return cmd
}

// pipelineOptions combines config values and flags.
func (o *renderOpts) pipelineOptions(cfg *config.Config, input string) pipeline.Options {
	tl := cfg.Timeline
	if o.start != "" {
		tl.Start = o.start
	}
	if o.end != "" {
		tl.End = o.end
	}
	if o.pattern != "" {
		tl.Scale.Format = o.pattern
	}
	if o.location != "" {
		tl.Location = o.location
	}
	tl.Ongoing = tl.Ongoing || o.ongoing
	tl.Debug = tl.Debug || o.debug

	width := o.width
	if width == 0 {
		width = cfg.Render.Width
	}
	return pipeline.Options{
		Input:       input,
		InputFormat: o.inputFormat,
		Width:       width,
		Timeline:    tl,
		Formats:     o.formats,
		Refresh:     o.refresh,
	}
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, w io.Writer, cfg *config.Config, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.pipelineOptions(cfg, input)
	popts.Logger = logger
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		format, _ := sink.ParseFormat(opts.formats[0])
		_, err := w.Write(result.Artifacts[string(format)])
		return err
	}

	base := basePath(opts.output, input)
	var written []string
	for _, f := range opts.formats {
		format, _ := sink.ParseFormat(f)
		path := base + format.Extension()
		if len(opts.formats) == 1 && opts.output != "" && filepath.Ext(opts.output) != "" {
			path = opts.output
		}
		if err := writeOutput(path, result.Artifacts[string(format)]); err != nil {
			return err
		}
		written = append(written, path)
	}
	prog.done(fmt.Sprintf("Rendered %d events", result.Stats.EventCount))

	printSuccess(w, "Rendered timeline")
	printStats(w, result.Stats.EventCount, result.Stats.Visible, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	if result.Stats.EventCount > 0 && result.Stats.Visible == 0 {
		printWarning(w, "no event falls inside the displayed period")
	}
	for _, p := range written {
		printFile(w, p)
	}
	return nil
}

// basePath derives the output path without extension. An empty output
// uses the input name; a known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" || input == "" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if ext != "" {
		if _, err := sink.ParseFormat(ext); err == nil {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
