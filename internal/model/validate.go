package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalid marks input rejected before it reaches the store
var ErrInvalid = errors.New("invalid input")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func checkRequired(field, v string, max int) error {
	if strings.TrimSpace(v) == "" {
		return invalidf("%s is required", field)
	}
	return checkLen(field, v, max)
}

func checkLen(field, v string, max int) error {
	if utf8.RuneCountInString(v) > max {
		return invalidf("%s must be at most %d characters", field, max)
	}
	return nil
}

func checkOptLen(field string, v *string, max int) error {
	if v == nil {
		return nil
	}
	return checkLen(field, *v, max)
}

// checkPatchRequired validates an update to a non-nullable field
func checkPatchRequired(field string, o Opt[string], max int) error {
	if !o.Set {
		return nil
	}
	if o.Null {
		return invalidf("%s cannot be null", field)
	}
	return checkRequired(field, o.Value, max)
}

func checkPatchLen(field string, o Opt[string], max int) error {
	if !o.Set || o.Null {
		return nil
	}
	return checkLen(field, o.Value, max)
}

func checkDateRange(start, end *Date) error {
	if start != nil && end != nil && end.Before(start.Time) {
		return invalidf("end_date %s is before start_date %s", end, start)
	}
	return nil
}
