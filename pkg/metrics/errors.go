package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrWriteFailed = errors.New("metrics textfile write failed")
)
