package scale

const (
	minute = 60.0
	hour   = 60 * minute
	day    = 24 * hour
	week   = 7 * day
	month  = 4 * week
	year   = 12 * month
)

// Ladder lists the candidate tick intervals in seconds, ascending.
// Months are four weeks and years twelve of those months, so the long end of
// the ladder is only approximately calendar aligned.
var Ladder = []float64{
	1, 2, 5, 10, 15, 30, // seconds
	minute, 2 * minute, 5 * minute, 10 * minute, 15 * minute, 30 * minute,
	hour, 2 * hour, 3 * hour, 6 * hour, 12 * hour,
	day, 2 * day, week, 2 * week,
	month, 2 * month, 3 * month, 6 * month,
	year, 2 * year, 5 * year,
}

// LadderIndex returns the position of seconds in the ladder, or -1.
func LadderIndex(seconds float64) int {
	for i, v := range Ladder {
		if v == seconds {
			return i
		}
	}
	return -1
}

// minorFor returns the minor interval for the major interval at index i.
func minorFor(i int) float64 {
	if i < 2 {
		return 0
	}
	return Ladder[i-2]
}
