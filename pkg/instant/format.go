package instant

import (
	"fmt"
	"regexp"
	"time"

	"github.com/matzehuels/timeline/pkg/errors"
)

// tokenRegex lists the longer token of each pair first so "mm" wins over "m".
var tokenRegex = regexp.MustCompile(`ss|mm|hh|DD|MM|YYYY|s|m|h|D|M|YY`)

// Format renders v with pattern. v must be a time.Time or a non-nil
// *time.Time; any other value is an INVALID_INPUT error. The instant is
// converted to loc first when loc is non-nil.
func Format(v any, pattern string, loc *time.Location) (string, error) {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case *time.Time:
		if x == nil {
			return "", errors.New(errors.ErrCodeInvalidInput, "cannot format a nil time")
		}
		t = *x
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "cannot format %T, date must be a time.Time", v)
	}
	if loc != nil {
		t = t.In(loc)
	}
	return FormatTime(t, pattern), nil
}

// FormatTime renders t with pattern without any type checks.
func FormatTime(t time.Time, pattern string) string {
	return tokenRegex.ReplaceAllStringFunc(pattern, func(tok string) string {
		switch tok {
		case "ss":
			return fmt.Sprintf("%02d", t.Second())
		case "s":
			return fmt.Sprint(t.Second())
		case "mm":
			return fmt.Sprintf("%02d", t.Minute())
		case "m":
			return fmt.Sprint(t.Minute())
		case "hh":
			return fmt.Sprintf("%02d", t.Hour())
		case "h":
			return fmt.Sprint(t.Hour())
		case "DD":
			return fmt.Sprintf("%02d", t.Day())
		case "D":
			return fmt.Sprint(t.Day())
		case "MM":
			return fmt.Sprintf("%02d", int(t.Month()))
		case "M":
			return fmt.Sprint(int(t.Month()))
		case "YYYY":
			return fmt.Sprintf("%04d", t.Year())
		case "YY":
			return fmt.Sprintf("%02d", t.Year()%100)
		}
		return tok
	})
}
