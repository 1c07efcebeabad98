package scale

import (
	"time"

	"github.com/matzehuels/timeline/pkg/instant"
)

// maxTicks bounds a single walk so a tiny interval over a huge span cannot
// allocate without limit.
const maxTicks = 100_000

// Ticks returns the grid points of stepSeconds that fall within span.
// The walk starts at span.Start rounded to the grid and stops once a point
// lies after span.End. Empty spans and non-positive steps yield no ticks.
func Ticks(span Span, stepSeconds float64) []time.Time {
	step := instant.Seconds(stepSeconds)
	if span.IsZero() || step.Milliseconds() <= 0 || span.End.Before(span.Start) {
		return nil
	}

	var out []time.Time
	for t := instant.Round(span.Start, step); !t.After(span.End); t = t.Add(step) {
		if !t.Before(span.Start) {
			out = append(out, t)
		}
		if len(out) >= maxTicks {
			break
		}
	}
	return out
}
