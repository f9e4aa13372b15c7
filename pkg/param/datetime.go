package param

import (
	"fmt"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

var (
	dateTimeLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
	}
	timeLayouts = []string{
		"15:04:05.999999999",
		"15:04",
	}
	dateLayout = "2006-01-02"
)

// DateTime parses an ISO-8601 date-time. A time on its own is placed on the
// current day, a date on its own at midnight. Values without an offset use the
// location of the run context clock.
func DateTime(name string) Parameter[time.Time] {
	return SingleContext(name, parseDateTime)
}

func parseDateTime(ctx RunContext, s string) (time.Time, error) {
	now := ctx.now()
	loc := now.Location()

	var firstErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			y, m, d := now.Date()
			return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
		}
	}

	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}

	return time.Time{}, firstErr
}

// Duration parses an ISO-8601 duration. Shorthand such as 1d2h or 30m is
// accepted and normalised to P1DT2H and PT30M first.
func Duration(name string) Parameter[time.Duration] {
	return Single(name, func(s string) (time.Duration, error) {
		iso := NormalizeDuration(s)
		if iso == "P" || strings.HasSuffix(iso, "T") {
			return 0, fmt.Errorf("invalid duration %q: no value", s)
		}
		d, err := duration.Parse(iso)
		if err != nil {
			return 0, err
		}
		return d.ToTimeDuration(), nil
	})
}

// NormalizeDuration rewrites duration shorthand into ISO-8601 form
func NormalizeDuration(s string) string {
	s = strings.ToUpper(s)
	if strings.HasPrefix(s, "P") {
		return s
	}

	if !strings.Contains(s, "T") {
		switch {
		case strings.Contains(s, "D"):
			if strings.ContainsAny(s, "HMS") {
				s = strings.Replace(s, "D", "DT", 1)
			}
		default:
			s = "T" + s
		}
	}
	return "P" + s
}
