// Package timestamp parses the loosely delimited timestamps used by the
// Fyyur venue and show pages.
//
// A timestamp is a sequence of digit runs separated by runs of any other
// characters, read positionally as
//
//	year, month, day, hour, minute, second, millisecond
//
// and interpreted in UTC. "2021-03-15T08:30:00.000", "2021/03/15 08:30:00 000"
// and "2021-03-15T08:30:00Z" all describe the same instant.
//
// ParseISOString never fails: input it cannot place on the calendar yields
// the zero time, which IsValid reports as invalid. ParseISOStringStrict
// rejects the same input with a *ParseError instead.
package timestamp

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour

	// maxEpochMillis bounds representable instants to ±100,000,000 days
	// around the Unix epoch.
	maxEpochMillis = 8.64e15

	// maxYear keeps time.Date well away from int64 overflow; anything
	// beyond it is far outside maxEpochMillis anyway.
	maxYear = 1_000_000_000
)

// fieldCount is the number of positional fields a timestamp carries.
const fieldCount = 7

var fieldNames = [fieldCount]string{"year", "month", "day", "hour", "minute", "second", "millisecond"}

var delimiters = regexp.MustCompile(`\D+`)

// Layout is the canonical rendering used by Format.
const Layout = "2006-01-02T15:04:05.000Z"

// ParseISOString converts s into an instant.
//
// Fields past the seventh are ignored and an empty field counts as zero, so
// a trailing "Z" is harmless. Fewer than seven fields, a field too large to
// be a number, or an instant outside the representable range all produce
// the zero time. Out-of-range fields roll over the way calendar arithmetic
// does: month 13 is January of the following year. Years 0 through 99 are
// read as 1900 through 1999.
func ParseISOString(s string) time.Time {
	tokens := split(s)
	if len(tokens) < fieldCount {
		return time.Time{}
	}

	var fields [fieldCount]int64
	for i := range fields {
		if tokens[i] == "" {
			continue
		}
		n, err := strconv.ParseInt(tokens[i], 10, 64)
		if err != nil {
			return time.Time{}
		}
		fields[i] = n
	}

	year := fields[0]
	if year >= 0 && year <= 99 {
		year += 1900
	}

	t, ok := fromUTC(year, fields[1]-1, fields[2], fields[3], fields[4], fields[5], fields[6])
	if !ok {
		return time.Time{}
	}
	return t
}

// IsValid reports whether t is a usable result of ParseISOString.
func IsValid(t time.Time) bool {
	return !t.IsZero()
}

// Format renders t in UTC using Layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

func split(s string) []string {
	return delimiters.Split(s, -1)
}

// fromUTC builds an instant from calendar fields with a zero-based month,
// normalising overflow in every field.
func fromUTC(year, month, day, hour, minute, second, milli int64) (time.Time, bool) {
	year += floorDiv(month, 12)
	month = month - floorDiv(month, 12)*12
	if year < -maxYear || year > maxYear {
		return time.Time{}, false
	}

	first := time.Date(int(year), time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	ms := float64(first.Unix())*msPerSecond +
		float64(day-1)*msPerDay +
		float64(hour)*msPerHour +
		float64(minute)*msPerMinute +
		float64(second)*msPerSecond +
		float64(milli)
	if math.IsNaN(ms) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, false
	}

	return time.UnixMilli(int64(ms)).UTC(), true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
