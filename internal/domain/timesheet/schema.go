package timesheet

import (
	"errors"
	"slices"
	"strings"
)

// Column names every input file must carry.
const (
	ColumnID          = "id"
	ColumnEmail       = "email"
	ColumnName        = "name"
	ColumnDepartment  = "department"
	ColumnHoursWorked = "hours_worked"
)

// RequiredColumns lists the non-rate columns in the order they are checked.
func RequiredColumns() []string {
	return []string{ColumnID, ColumnEmail, ColumnName, ColumnDepartment, ColumnHoursWorked}
}

// DefaultRateAliases are the header names accepted for the hourly rate.
func DefaultRateAliases() []string {
	return []string{"hourly_rate", "rate", "salary"}
}

// ResolveRateColumn returns the first header, in header order, that is one of
// aliases. It fails with a *MissingColumnError (File left empty) when none is
// present.
func ResolveRateColumn(headers, aliases []string) (string, error) {
	for _, h := range headers {
		if slices.Contains(aliases, h) {
			return h, nil
		}
	}
	return "", &MissingColumnError{Column: strings.Join(aliases, "|")}
}

// Schema maps the columns of one file's header to field positions.
type Schema struct {
	Headers    []string
	RateColumn string
	index      map[string]int
}

// NewSchema resolves the rate column and checks every required column against
// headers. The rate column is resolved first.
func NewSchema(file string, headers, aliases []string) (*Schema, error) {
	rate, err := ResolveRateColumn(headers, aliases)
	if err != nil {
		var mc *MissingColumnError
		if errors.As(err, &mc) {
			mc.File = file
		}
		return nil, err
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		// Duplicate names resolve to the last occurrence.
		index[h] = i
	}
	for _, col := range RequiredColumns() {
		if _, ok := index[col]; !ok {
			return nil, &MissingColumnError{File: file, Column: col}
		}
	}

	return &Schema{Headers: headers, RateColumn: rate, index: index}, nil
}

// Width is the number of fields every data row must have.
func (s *Schema) Width() int { return len(s.Headers) }

// Field returns the value of column in row. The row must have Width fields.
func (s *Schema) Field(row []string, column string) string {
	return row[s.index[column]]
}
