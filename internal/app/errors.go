package service

import (
	"errors"
	"fmt"
)

// Sentinel kinds for run errors.
var (
	ErrNoData      = errors.New("no data to generate report")
	ErrNoFiles     = errors.New("no input files")
	ErrWriteReport = errors.New("write report failed")
)

// FileError reports the input file that aborted a run.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
