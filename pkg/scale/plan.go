package scale

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/timeline/pkg/instant"
)

// TickSpec is the outcome of planning a scale.
type TickSpec struct {
	// Major is the interval between labeled ticks, in seconds.
	Major float64 `json:"major"`
	// Minor is the interval between unlabeled ticks, in seconds; 0 means none.
	Minor float64 `json:"minor,omitempty"`
	// Index is the ladder position of Major, or -1 when Major did not come from the ladder.
	Index int `json:"index"`
}

// HasMinor reports whether minor ticks should be drawn.
func (s TickSpec) HasMinor() bool { return s.Minor > 0 }

// MajorDuration returns Major as a time.Duration.
func (s TickSpec) MajorDuration() time.Duration { return instant.Seconds(s.Major) }

// MinorDuration returns Minor as a time.Duration.
func (s TickSpec) MinorDuration() time.Duration { return instant.Seconds(s.Minor) }

// String renders the spec as e.g. "major=15m0s minor=5m0s".
func (s TickSpec) String() string {
	if !s.HasMinor() {
		return fmt.Sprintf("major=%s", s.MajorDuration())
	}
	return fmt.Sprintf("major=%s minor=%s", s.MajorDuration(), s.MinorDuration())
}

// Span is a closed time interval.
type Span struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns |End - Start| in seconds.
func (s Span) Duration() float64 {
	return math.Abs(instant.Between(s.Start, s.End))
}

// IsZero reports whether the span has no extent.
func (s Span) IsZero() bool { return s.Duration() == 0 }

// Contains reports whether t lies within [Start, End].
func (s Span) Contains(t time.Time) bool {
	return !t.Before(s.Start) && !t.After(s.End)
}

// Clamp limits t to [Start, End].
func (s Span) Clamp(t time.Time) time.Time {
	if t.Before(s.Start) {
		return s.Start
	}
	if t.After(s.End) {
		return s.End
	}
	return t
}

// MinInterval returns the smallest major interval, in seconds, that keeps
// labels of labelWidth pixels within fillFactor of pixelWidth.
func MinInterval(span Span, pixelWidth, labelWidth, fillFactor float64) float64 {
	maxLabels := (pixelWidth / labelWidth) * fillFactor
	return span.Duration() / maxLabels
}

// Plan picks major and minor intervals for span drawn across pixelWidth.
func Plan(span Span, pixelWidth, labelWidth, fillFactor float64) TickSpec {
	minMajor := MinInterval(span, pixelWidth, labelWidth, fillFactor)
	if !(minMajor > 0) || math.IsInf(minMajor, 0) {
		last := len(Ladder) - 1
		return TickSpec{Major: Ladder[last], Minor: minorFor(last), Index: last}
	}
	return Select(minMajor)
}

// Select returns the first ladder entry at or above minMajor. Beyond the end
// of the ladder it returns the smallest multiple of the largest entry that
// still satisfies minMajor.
func Select(minMajor float64) TickSpec {
	for i, v := range Ladder {
		if v >= minMajor {
			return TickSpec{Major: v, Minor: minorFor(i), Index: i}
		}
	}
	last := len(Ladder) - 1
	top := Ladder[last]
	return TickSpec{Major: math.Ceil(minMajor/top) * top, Minor: minorFor(last), Index: -1}
}

// PlanWithOverride is Plan unless major is positive, in which case the
// explicit major and minor intervals are used as given.
func PlanWithOverride(span Span, pixelWidth, labelWidth, fillFactor, major, minor float64) TickSpec {
	if major > 0 {
		return TickSpec{Major: major, Minor: math.Max(minor, 0), Index: LadderIndex(major)}
	}
	return Plan(span, pixelWidth, labelWidth, fillFactor)
}
