package instant

import (
	"math"
	"time"
)

// Round returns t rounded to the nearest multiple of step, measured in
// milliseconds from the Unix epoch. Halves round up, towards the future.
// A non-positive step returns t unchanged.
func Round(t time.Time, step time.Duration) time.Time {
	stepMillis := step.Milliseconds()
	if stepMillis <= 0 {
		return t
	}
	q := math.Floor(float64(t.UnixMilli())/float64(stepMillis) + 0.5)
	return time.UnixMilli(int64(q) * stepMillis).In(t.Location())
}

// Seconds converts a floating point number of seconds to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Between returns b - a in seconds. Unlike time.Time.Sub it does not
// saturate, so spans of more than 292 years stay exact to the nanosecond.
func Between(a, b time.Time) float64 {
	return float64(b.Unix()-a.Unix()) + float64(b.Nanosecond()-a.Nanosecond())/1e9
}
