package timestamp

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrMalformed is matched by every error ParseISOStringStrict returns.
var ErrMalformed = errors.New("malformed timestamp")

// ParseError describes why a timestamp was rejected.
type ParseError struct {
	Input  string
	Field  string // empty when the input as a whole is at fault
	Reason string
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v %q: %s: %s", ErrMalformed, e.Input, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v %q: %s", ErrMalformed, e.Input, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}

var fieldLimits = [fieldCount][2]int64{
	{0, 9999}, // year
	{1, 12},   // month
	{1, 31},   // day, checked against the month below
	{0, 23},   // hour
	{0, 59},   // minute
	{0, 59},   // second
	{0, 999},  // millisecond
}

// ParseISOStringStrict tokenises s the same way as ParseISOString but
// requires all seven fields to be present and within calendar range.
// Years are taken literally.
func ParseISOStringStrict(s string) (time.Time, error) {
	tokens := split(s)
	if len(tokens) > 0 && tokens[0] == "" {
		tokens = tokens[1:]
	}
	if len(tokens) < fieldCount {
		return time.Time{}, &ParseError{
			Input:  s,
			Reason: fmt.Sprintf("expected %d numeric fields, found %d", fieldCount, countNonEmpty(tokens)),
		}
	}

	var fields [fieldCount]int64
	for i := range fields {
		if tokens[i] == "" {
			return time.Time{}, &ParseError{Input: s, Field: fieldNames[i], Reason: "missing"}
		}
		n, err := strconv.ParseInt(tokens[i], 10, 64)
		if err != nil {
			return time.Time{}, &ParseError{Input: s, Field: fieldNames[i], Reason: "not a number"}
		}
		if n < fieldLimits[i][0] || n > fieldLimits[i][1] {
			return time.Time{}, &ParseError{
				Input:  s,
				Field:  fieldNames[i],
				Reason: fmt.Sprintf("%d out of range [%d, %d]", n, fieldLimits[i][0], fieldLimits[i][1]),
			}
		}
		fields[i] = n
	}

	t := time.Date(int(fields[0]), time.Month(fields[1]), int(fields[2]),
		int(fields[3]), int(fields[4]), int(fields[5]), int(fields[6])*int(time.Millisecond), time.UTC)
	if t.Day() != int(fields[2]) {
		return time.Time{}, &ParseError{
			Input:  s,
			Field:  "day",
			Reason: fmt.Sprintf("%d does not exist in %s %d", fields[2], time.Month(fields[1]), fields[0]),
		}
	}

	return t, nil
}

func countNonEmpty(tokens []string) int {
	n := 0
	for _, tok := range tokens {
		if tok != "" {
			n++
		}
	}
	return n
}
