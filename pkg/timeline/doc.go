// Package timeline draws events as horizontal rows under an adaptive time
// scale.
//
// Rendering happens in two steps. [BuildLayout] resolves the displayed
// period, plans tick intervals that keep labels from overlapping and
// computes the geometry of every row. [Draw] turns that layout into an
// [svg.Document]. [Render] does both.
//
// [Timeline] keeps the two steps bound to a [Container]: every call to
// SetData, SetPeriod or Refresh rebuilds the drawing and swaps it in whole.
//
//	c := timeline.NewMemoryContainer(800)
//	tl, err := timeline.New(c, timeline.Options{})
//	if err != nil {
//		return err
//	}
//	err = tl.SetData([]timeline.Event{
//		{Start: "2024-01-01T00:10:00Z", Label: "Deploy"},
//		{Start: "2024-01-01T00:20:00Z", End: "2024-01-01T00:40:00Z", Label: "Migration"},
//	})
//
// Each event occupies one row in input order. Rows whose extent misses the
// period keep their slot but draw nothing. Events without an end are point
// events; with Options.Ongoing they run up to the current time instead.
package timeline
