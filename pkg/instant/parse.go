package instant

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/timeline/pkg/errors"
)

// Date is a calendar date with a 1-based month.
// It is the struct form of the {year, month, date} object accepted by [Parse].
type Date struct {
	Year  int `json:"year" yaml:"year" toml:"year"`
	Month int `json:"month" yaml:"month" toml:"month"`
	Day   int `json:"date" yaml:"date" toml:"date"`
}

// layouts are tried in order when parsing strings.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	time.RFC1123Z,
	time.RFC1123,
}

// Parse converts v into an instant.
//
// Strings without an explicit offset, calendar triples and [Date] values are
// interpreted in loc; a nil loc means UTC. Numbers are epoch milliseconds.
// The zero time is returned with a nil error for falsy input.
func Parse(v any, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	switch x := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return x, nil
	case *time.Time:
		if x == nil {
			return time.Time{}, nil
		}
		return *x, nil
	case Date:
		return fromCalendar(float64(x.Year), float64(x.Month), float64(x.Day), loc), nil
	case *Date:
		if x == nil {
			return time.Time{}, nil
		}
		return fromCalendar(float64(x.Year), float64(x.Month), float64(x.Day), loc), nil
	case bool:
		if !x {
			return time.Time{}, nil
		}
		return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "cannot use boolean %v as a date", x)
	case string:
		return parseString(x, loc)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return time.Time{}, errors.Wrap(errors.ErrCodeInvalidDate, err, "invalid epoch %q", x.String())
		}
		return fromMillis(f)
	case []any:
		return parseTriple(x, loc)
	case []int:
		return parseTriple(toAny(x), loc)
	case []int64:
		return parseTriple(toAny(x), loc)
	case []float64:
		return parseTriple(toAny(x), loc)
	case map[string]any:
		return parseObject(x, loc)
	}

	if f, ok := number(v); ok {
		return fromMillis(f)
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "unsupported date value of type %T", v)
}

// MustParse is like Parse but panics on error. It is meant for tests and
// package-level fixtures.
func MustParse(v any, loc *time.Location) time.Time {
	t, err := Parse(v, loc)
	if err != nil {
		panic(err)
	}
	return t
}

func parseString(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromMillis(f)
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "unable to parse date %q", s)
}

func parseTriple(parts []any, loc *time.Location) (time.Time, error) {
	if len(parts) != 3 {
		return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "date sequence needs [year, month, day], got %d elements", len(parts))
	}
	var vals [3]float64
	for i, p := range parts {
		f, ok := number(p)
		if !ok {
			return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "date sequence element %d is %T, want a number", i, p)
		}
		vals[i] = f
	}
	return fromCalendar(vals[0], vals[1], vals[2], loc), nil
}

func parseObject(m map[string]any, loc *time.Location) (time.Time, error) {
	day, ok := m["date"]
	if !ok {
		day = m["day"]
	}
	return parseTriple([]any{m["year"], m["month"], day}, loc)
}

func fromCalendar(year, month, day float64, loc *time.Location) time.Time {
	return time.Date(int(year), time.Month(int(month)), int(day), 0, 0, 0, 0, loc)
}

func fromMillis(f float64) (time.Time, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "epoch value %v is not finite", f)
	}
	if f == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(int64(f)).UTC(), nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func toAny[T int | int64 | float64](xs []T) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
