package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/pkg/pipeline"
)

// scaleCommand prints the tick intervals chosen for a period.
func (c *CLI) scaleCommand() *cobra.Command {
	var req pipeline.ScaleRequest
	var start, end string

	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Show the tick intervals chosen for a period and width",
		Example: `  timeline scale --start 2024-01-01T00:00:00Z --end 2024-01-01T01:00:00Z --width 700
  timeline scale --start 2020-01-01 --end 2024-01-01 --label-width 80 --fill 0.3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			req.Start, req.End = start, end
			req.Timeline = cfg.Timeline
			if req.Width == 0 {
				req.Width = cfg.Render.Width
			}
			res, err := pipeline.PlanScale(req)
			if err != nil {
				return err
			}
			printScale(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "period start")
	cmd.Flags().StringVar(&end, "end", "", "period end")
	cmd.Flags().Float64VarP(&req.Width, "width", "w", 0, "surface width in pixels including margins")
	cmd.Flags().Float64Var(&req.LabelWidth, "label-width", 0, "tick label width in pixels (default: measured)")
	cmd.Flags().Float64Var(&req.FillFactor, "fill", 0, "share of the width labels may fill (default 0.5)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func printScale(w io.Writer, res *pipeline.ScaleResult) {
	fmt.Fprintln(w, StyleTitle.Render("Scale"))
	printKeyValue(w, "Period", res.Span.Start.Format(time.RFC3339)+" → "+res.Span.End.Format(time.RFC3339))
	printKeyValue(w, "Duration", res.Span.End.Sub(res.Span.Start).String())
	printKeyValue(w, "Draw width", fmt.Sprintf("%gpx", res.DrawWidth))
	printKeyValue(w, "Label width", fmt.Sprintf("%.1fpx", res.LabelWidth))
	if res.Major == "" {
		printDetail(w, "period has no extent, no ticks")
		return
	}
	printKeyValue(w, "Major", StyleNumber.Render(res.Major))
	minor := res.Minor
	if minor == "" {
		minor = "none"
	}
	printKeyValue(w, "Minor", StyleNumber.Render(minor))

	labels := make([]string, 0, len(res.Ticks))
	for _, t := range res.Ticks {
		labels = append(labels, t.Label)
	}
	printKeyValue(w, "Ticks", fmt.Sprintf("%d", len(res.Ticks)))
	if len(labels) > 0 {
		printDetail(w, "%s", strings.Join(labels, "  "))
	}
}
