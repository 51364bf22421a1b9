package hoconparser

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// durationUnits maps every recognized unit spelling (longest match wins) to
// its value in nanoseconds. "mo" (month) and "y" (year) are optional
// implementer features per spec.md §4.1; "m" always means minutes.
var durationUnits = map[string]time.Duration{
	"ns": time.Nanosecond, "nano": time.Nanosecond, "nanos": time.Nanosecond, "nanosecond": time.Nanosecond, "nanoseconds": time.Nanosecond,
	"us": time.Microsecond, "micro": time.Microsecond, "micros": time.Microsecond, "microsecond": time.Microsecond, "microseconds": time.Microsecond,
	"ms": time.Millisecond, "milli": time.Millisecond, "millis": time.Millisecond, "millisecond": time.Millisecond, "milliseconds": time.Millisecond,
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
	"w": 7 * 24 * time.Hour, "week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour,
	"mo": 30 * 24 * time.Hour, "month": 30 * 24 * time.Hour, "months": 30 * 24 * time.Hour,
	"y": 365 * 24 * time.Hour, "year": 365 * 24 * time.Hour, "years": 365 * 24 * time.Hour,
}

var durationUnitsByLength []string

func init() {
	for u := range durationUnits {
		durationUnitsByLength = append(durationUnitsByLength, u)
	}
	sort.Slice(durationUnitsByLength, func(i, j int) bool {
		return len(durationUnitsByLength[i]) > len(durationUnitsByLength[j])
	})
}

// scanDurationUnit looks for a recognized duration unit word at the start
// of rest, immediately followed by a number terminator. It does not
// consume anything; it only reports the matched spelling.
func scanDurationUnit(rest string) (string, bool) {
	for _, u := range durationUnitsByLength {
		if len(rest) < len(u) {
			continue
		}
		if !strings.EqualFold(rest[:len(u)], u) {
			continue
		}
		if isNumberTerminator(rest[len(u):]) {
			return rest[:len(u)], true
		}
	}
	return "", false
}

// DurationFromLiteral folds a number + unit duration token into a
// time.Duration. value is the numeric prefix (already parsed as float64),
// unit is the matched unit spelling (any case).
func DurationFromLiteral(value float64, unit string) time.Duration {
	base, ok := durationUnits[strings.ToLower(unit)]
	if !ok {
		base = time.Millisecond
	}
	return time.Duration(value * float64(base))
}

// SplitDurationToken separates a scanned DurationToken's raw text into its
// numeric prefix and unit suffix.
func SplitDurationToken(raw string) (numberPart, unitPart string) {
	for _, u := range durationUnitsByLength {
		if strings.HasSuffix(strings.ToLower(raw), u) {
			return raw[:len(raw)-len(u)], raw[len(raw)-len(u):]
		}
	}
	return raw, ""
}

// formatDurationUnits lists the short unit spellings FormatDuration picks
// from, largest first, so a value concatenated back into a string (spec.md
// §4.5, e.g. S7's `application.foo = 128m` folded into a list of strings)
// renders with the same spelling HOCON input would use, not Go's
// time.Duration.String() layout ("2h8m0s").
var formatDurationUnits = []struct {
	suffix string
	size   time.Duration
}{
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
}

// FormatDuration picks the largest whole unit that round-trips exactly,
// falling back to milliseconds. Shared by Value.String() (used anywhere a
// duration is rendered as a string, including value concatenation) and by
// serialize.ToHOCON.
func FormatDuration(d time.Duration) string {
	for _, u := range formatDurationUnits {
		if d%u.size == 0 {
			return strconv.FormatInt(int64(d/u.size), 10) + u.suffix
		}
	}
	return strconv.FormatInt(int64(d/time.Millisecond), 10) + "ms"
}
