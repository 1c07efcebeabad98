// Package scale chooses tick spacing for a time axis.
//
// Labels on a time axis should land on human-friendly boundaries (every 15
// minutes, every day, every two weeks) and should not crowd each other. [Plan]
// balances the two: it estimates how many labels fit into the available
// width, derives the smallest acceptable interval between labels, and picks
// the first entry of a fixed [Ladder] of round durations at or above it.
//
// # Minor Ticks
//
// Minor ticks use the ladder entry two positions below the major interval.
// With the current ladder every such pair divides evenly (15 min over 5 min,
// 1 d over 6 h), but that is a property of the table rather than of the rule.
// Callers that need a specific subdivision should pass explicit intervals to
// [PlanWithOverride].
//
// # Stepping
//
// [Ticks] walks the grid of an interval across a span: it starts at the span
// start rounded to the interval grid and steps forward until it passes the
// span end, keeping only the points inside the span.
package scale
