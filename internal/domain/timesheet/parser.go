// Package timesheet parses comma-separated employee timesheet files into
// model.Employee records.
//
// The format is line oriented: the first line is the header, every following
// line is a data row. Fields are split on "," without quoting support and are
// trimmed of surrounding whitespace. Rows whose field count differs from the
// header are skipped and reported in Result.Skipped.
package timesheet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/paysheet/internal/domain/model"
	"github.com/okian/paysheet/pkg/logger"
)

const (
	fieldSeparator      = ","
	defaultMaxLineBytes = 1 << 20
	initialBufferBytes  = 64 << 10
)

// SkippedRow describes a data row excluded for a field count mismatch.
type SkippedRow struct {
	Line     int // 1-based line number in the file
	Fields   int // fields found on the line
	Expected int // fields in the header
}

// Result is the outcome of parsing one file.
type Result struct {
	File       string
	RateColumn string
	Records    []model.Employee
	Skipped    []SkippedRow
}

// Parser turns timesheet content into employee records.
type Parser struct {
	rateAliases  []string
	maxLineBytes int
	logger       logger.Logger
}

// New creates a Parser with the default rate aliases.
func New(opts ...Option) *Parser {
	p := &Parser{
		rateAliases:  DefaultRateAliases(),
		maxLineBytes: defaultMaxLineBytes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RateAliases returns a copy of the accepted rate column names.
func (p *Parser) RateAliases() []string {
	return append([]string(nil), p.rateAliases...)
}

// ParseFile opens path and parses it. The path is used as the file name in
// errors and records.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer func() { _ = f.Close() }()

	return p.Parse(ctx, path, f)
}

// Parse reads timesheet content from r. file names the source in errors and
// in each record's Source.
func (p *Parser) Parse(ctx context.Context, file string, r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(decodingReader(r))
	scanner.Buffer(make([]byte, 0, min(initialBufferBytes, p.maxLineBytes)), p.maxLineBytes)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRead, file, err)
		}
		return nil, &EmptyInputError{File: file}
	}

	schema, err := NewSchema(file, splitFields(scanner.Text()), p.rateAliases)
	if err != nil {
		return nil, err
	}

	res := &Result{File: file, RateColumn: schema.RateColumn}
	line := 1
	for scanner.Scan() {
		line++
		fields := splitFields(scanner.Text())
		if len(fields) != schema.Width() {
			res.Skipped = append(res.Skipped, SkippedRow{Line: line, Fields: len(fields), Expected: schema.Width()})
			if p.logger != nil {
				p.logger.Debug(ctx, "skipping row with mismatched field count",
					logger.String("file", file),
					logger.Int("line", line),
					logger.Int("fields", len(fields)),
					logger.Int("expected", schema.Width()),
				)
			}
			continue
		}

		rec, err := buildEmployee(schema, fields, model.Source{File: file, Line: line})
		if err != nil {
			return nil, err
		}
		res.Records = append(res.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: line %d: %w", ErrRead, file, line+1, err)
	}

	return res, nil
}

// buildEmployee constructs a record from a row of schema width. It fails
// when hours or rate do not parse as floats.
func buildEmployee(s *Schema, row []string, src model.Source) (model.Employee, error) {
	hours, err := parseNumber(s, row, ColumnHoursWorked, src)
	if err != nil {
		return model.Employee{}, err
	}
	rate, err := parseNumber(s, row, s.RateColumn, src)
	if err != nil {
		return model.Employee{}, err
	}

	return model.Employee{
		ID:          s.Field(row, ColumnID),
		Email:       s.Field(row, ColumnEmail),
		Name:        s.Field(row, ColumnName),
		Department:  s.Field(row, ColumnDepartment),
		HoursWorked: hours,
		HourlyRate:  rate,
		Source:      src,
	}, nil
}

func parseNumber(s *Schema, row []string, column string, src model.Source) (float64, error) {
	raw := s.Field(row, column)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &MalformedValueError{File: src.File, Line: src.Line, Column: column, Value: raw, Err: err}
	}
	return v, nil
}

// splitFields splits a line on commas and trims each field.
func splitFields(line string) []string {
	fields := strings.Split(line, fieldSeparator)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
