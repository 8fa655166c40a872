package timesheet

import (
	"errors"
	"fmt"
)

// Sentinel kinds for parse errors. Every typed error below unwraps to one of
// these so callers can use errors.Is.
var (
	ErrEmptyInput     = errors.New("empty input")
	ErrMissingColumn  = errors.New("missing column")
	ErrMalformedValue = errors.New("malformed value")
	ErrRead           = errors.New("read failed")
)

// EmptyInputError reports a file without any content.
type EmptyInputError struct {
	File string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("file %s is empty", e.File)
}

func (e *EmptyInputError) Unwrap() error { return ErrEmptyInput }

// MissingColumnError reports a required or rate column absent from the header.
type MissingColumnError struct {
	File   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %s in %s", e.Column, e.File)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// MalformedValueError reports a numeric field that does not parse.
type MalformedValueError struct {
	File   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed value %q for column %s at %s:%d", e.Value, e.Column, e.File, e.Line)
}

// Unwrap exposes both the sentinel and the strconv cause.
func (e *MalformedValueError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedValue}
	}
	return []error{ErrMalformedValue, e.Err}
}

// Kind returns a short label for err, suitable for metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrMissingColumn):
		return "missing_column"
	case errors.Is(err, ErrMalformedValue):
		return "malformed_value"
	case errors.Is(err, ErrRead):
		return "read_error"
	default:
		return "unknown"
	}
}
