package sampledata

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/okian/paysheet/internal/domain/timesheet"
)

// ErrInvalidConfig is returned when a Config cannot produce any file.
var ErrInvalidConfig = errors.New("invalid sample data config")

// Default configuration constants.
const (
	DefaultFiles  = 3
	DefaultRows   = 20
	DefaultPrefix = "timesheet"
)

// Config holds configuration for a generation run.
type Config struct {
	Dir            string   // Output directory, created when missing
	Prefix         string   // File name prefix
	Files          int      // Number of files to write
	Rows           int      // Data rows per file
	MalformedEvery int      // Every Nth data row loses its last field; 0 disables
	Seed           uint64   // Same seed, same files
	Workers        int      // Concurrent file writers
	Departments    []string // Department pool
	RateAliases    []string // One alias is picked per file
}

// Stats holds generation statistics.
type Stats struct {
	Files     int
	Rows      int
	Malformed int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// DefaultConfig returns a Config writing to dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:         dir,
		Prefix:      DefaultPrefix,
		Files:       DefaultFiles,
		Rows:        DefaultRows,
		Workers:     runtime.NumCPU(),
		Departments: []string{"Engineering", "Finance", "Marketing", "Operations", "Sales", "Support"},
		RateAliases: timesheet.DefaultRateAliases(),
	}
}

func (c *Config) validate() error {
	switch {
	case c.Dir == "":
		return fmt.Errorf("%w: output directory is required", ErrInvalidConfig)
	case c.Files < 1:
		return fmt.Errorf("%w: files must be at least 1, got %d", ErrInvalidConfig, c.Files)
	case c.Rows < 0:
		return fmt.Errorf("%w: rows must not be negative, got %d", ErrInvalidConfig, c.Rows)
	case c.MalformedEvery < 0:
		return fmt.Errorf("%w: malformed_every must not be negative, got %d", ErrInvalidConfig, c.MalformedEvery)
	case len(c.Departments) == 0:
		return fmt.Errorf("%w: at least one department is required", ErrInvalidConfig)
	case len(c.RateAliases) == 0:
		return fmt.Errorf("%w: at least one rate alias is required", ErrInvalidConfig)
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return nil
}
