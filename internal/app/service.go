// Package service ties the timesheet parser and the report registry into a
// single report run: read files in order, combine their records, render the
// selected report and deliver it.
package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/okian/paysheet/internal/domain/model"
	"github.com/okian/paysheet/internal/domain/report"
	"github.com/okian/paysheet/internal/domain/timesheet"
	"github.com/okian/paysheet/pkg/logger"
	"github.com/okian/paysheet/pkg/metrics"
)

const (
	defaultOutputSuffix = ".csv"
	outputFileMode      = 0o644
	msPerSecond         = 1e3
)

// Request describes one report run.
type Request struct {
	Files  []string // read in this order
	Report string   // registry name
	Output string   // optional; written to Output + suffix when set
}

// Stats summarizes what a run consumed.
type Stats struct {
	Files       int
	Records     int
	SkippedRows int
	Departments int
	GrandTotal  float64
}

// Outcome is the result of a successful run.
type Outcome struct {
	Report     string
	OutputPath string // empty when the report went to the writer
	Stats      Stats
}

// Service runs reports over timesheet files.
type Service struct {
	parser       *timesheet.Parser
	registry     *report.Registry
	rateAliases  []string
	outputSuffix string
	runID        string
	logger       logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry replaces the built-in report registry.
func WithRegistry(r *report.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithRateAliases sets the accepted rate column names.
func WithRateAliases(aliases []string) Option {
	return func(s *Service) {
		if len(aliases) > 0 {
			s.rateAliases = aliases
		}
	}
}

// WithOutputSuffix sets the suffix appended to Request.Output.
func WithOutputSuffix(suffix string) Option {
	return func(s *Service) {
		s.outputSuffix = suffix
	}
}

// WithRunID sets the identifier attached to every log line of the run.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}

// New constructs a Service with the default registry and rate aliases.
func New(opts ...Option) *Service {
	s := &Service{
		registry:     report.Default(),
		rateAliases:  timesheet.DefaultRateAliases(),
		outputSuffix: defaultOutputSuffix,
		runID:        uuid.NewString(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.With(logger.String("run_id", s.runID))
	s.parser = timesheet.New(
		timesheet.WithRateAliases(s.rateAliases),
		timesheet.WithLogger(s.logger.Named("timesheet")),
	)

	return s
}

// RunID returns the identifier of this service's run.
func (s *Service) RunID() string { return s.runID }

// Reports returns the names of the registered reports.
func (s *Service) Reports() []string { return s.registry.Names() }

// OutputPath returns the file a report named name is written to.
func (s *Service) OutputPath(name string) string { return name + s.outputSuffix }

// Run executes req. The report name is checked before any file is read; an
// unknown name yields *report.UnknownReportError. The first file that fails
// aborts the run with a *FileError and discards records from earlier files.
// When req.Output is empty the report is written to w.
func (s *Service) Run(ctx context.Context, req Request, w io.Writer) (*Outcome, error) {
	gen, err := s.registry.Lookup(req.Report)
	if err != nil {
		s.logger.Warn(ctx, "unknown report requested", logger.String("report", req.Report))
		return nil, err
	}

	records, stats, err := s.LoadRecords(ctx, req.Files)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		s.logger.Warn(ctx, "no records parsed", logger.Int("files", stats.Files))
		return nil, ErrNoData
	}

	out := &Outcome{Report: s.generate(ctx, req.Report, gen, records), Stats: stats}
	groups := report.GroupByDepartment(records)
	out.Stats.Departments = len(groups)
	out.Stats.GrandTotal = report.GrandTotal(groups)
	metrics.UpdateReportDepartments(out.Stats.Departments)
	metrics.UpdateReportPayoutTotal(out.Stats.GrandTotal)

	if req.Output == "" {
		if _, err := io.WriteString(w, out.Report+"\n"); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteReport, err)
		}
		return out, nil
	}

	out.OutputPath = s.OutputPath(req.Output)
	if err := os.WriteFile(out.OutputPath, []byte(out.Report), outputFileMode); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWriteReport, out.OutputPath, err)
	}
	s.logger.Info(ctx, "report written", logger.String("path", out.OutputPath))
	return out, nil
}

// LoadRecords parses files in order and concatenates their records. It stops
// at the first failing file and returns no records in that case.
func (s *Service) LoadRecords(ctx context.Context, files []string) ([]model.Employee, Stats, error) {
	var stats Stats
	if len(files) == 0 {
		return nil, stats, ErrNoFiles
	}

	var all []model.Employee
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, stats, &FileError{File: file, Err: err}
		}

		start := time.Now()
		res, err := s.parser.ParseFile(ctx, file)
		metrics.RecordParseLatency(float64(time.Since(start).Microseconds()) / msPerSecond)
		if err != nil {
			metrics.RecordParseError(timesheet.Kind(err))
			s.logger.Error(ctx, "failed to parse file", logger.String("file", file), logger.Error(err))
			return nil, stats, &FileError{File: file, Err: err}
		}

		stats.Files++
		stats.Records += len(res.Records)
		stats.SkippedRows += len(res.Skipped)
		metrics.RecordFileParsed()
		metrics.RecordRecordsParsed(len(res.Records))
		metrics.RecordRowsSkipped(len(res.Skipped))

		if len(res.Skipped) > 0 {
			s.logger.Warn(ctx, "skipped rows with mismatched field count",
				logger.String("file", file),
				logger.Int("skipped", len(res.Skipped)),
			)
		}
		s.logger.Debug(ctx, "parsed file",
			logger.String("file", file),
			logger.String("rate_column", res.RateColumn),
			logger.Int("records", len(res.Records)),
		)

		all = append(all, res.Records...)
	}

	metrics.UpdateRunRecords(len(all))
	return all, stats, nil
}

func (s *Service) generate(ctx context.Context, name string, gen report.Generator, records []model.Employee) string {
	start := time.Now()
	text := gen.Generate(records)
	elapsed := float64(time.Since(start).Microseconds()) / msPerSecond
	metrics.RecordReportLatency(name, elapsed)
	s.logger.Debug(ctx, "report generated",
		logger.String("report", name),
		logger.Int("records", len(records)),
		logger.Float64("latency_ms", elapsed),
	)
	return text
}
