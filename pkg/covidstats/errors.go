package covidstats

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput      = errors.New("malformed input")
	ErrEmptyInput          = errors.New("empty input")
	ErrInsufficientHistory = errors.New("insufficient history")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrInvalidWindow       = errors.New("lookback window must be positive")
)

// MalformedInputError describes the raw point which could not be normalized.
type MalformedInputError struct {
	Index  int
	Key    string
	Value  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at #%d (%q: %q): %s", e.Index, e.Key, e.Value, e.Reason)
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// MetricError names the metric whose aggregation failed.
type MetricError struct {
	Metric Metric
	Err    error
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("%s: %s", e.Metric, e.Err)
}

func (e *MetricError) Unwrap() error {
	return e.Err
}
