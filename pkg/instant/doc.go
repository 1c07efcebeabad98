// Package instant parses, rounds and formats the points in time a timeline
// is drawn from.
//
// Timeline data arrives in many shapes: Go time values, epoch milliseconds
// from JSON, date strings from CSV exports, [year, month, day] triples and
// objects with year/month/date fields. [Parse] folds all of them into a
// [time.Time]. Falsy inputs (nil, "", 0, false) yield the zero time and no
// error, which callers treat as "not set". Anything else that cannot be
// understood is rejected with an INVALID_DATE error instead of silently
// becoming an invalid coordinate later on.
//
// [Round] snaps an instant to a duration grid anchored at the Unix epoch, and
// [Format] renders an instant with a small token pattern language:
//
//	YYYY  four digit year        YY  two digit year
//	MM    month, zero padded     M   month
//	DD    day, zero padded       D   day
//	hh    hour (24h), padded     h   hour
//	mm    minute, padded         m   minute
//	ss    second, padded         s   second
//
// Any other character in the pattern is copied unchanged.
package instant
