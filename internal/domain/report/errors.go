package report

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for registry errors.
var (
	ErrUnknownReport   = errors.New("unknown report")
	ErrDuplicateReport = errors.New("report already registered")
	ErrInvalidReport   = errors.New("invalid report registration")
)

// UnknownReportError is returned by Lookup for an unregistered name. Available
// lists the registered names in sorted order.
type UnknownReportError struct {
	Name      string
	Available []string
}

func (e *UnknownReportError) Error() string {
	return fmt.Sprintf("unknown report %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

func (e *UnknownReportError) Unwrap() error { return ErrUnknownReport }
