package models

import (
	"fmt"
	"strings"
	"time"
)

// Typed errors for the normalization and modeling pipeline. Every stage
// returns one of these; nothing is logged-and-swallowed and no partial
// table is ever exposed past a failed stage.

// FetchError wraps any failure reported by the quote source (network,
// auth, vendor throttling). The cause is opaque to the pipeline.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("quote fetch: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// MissingFieldError reports a per-timestamp record whose labels could not
// be resolved to all five OHLCV roles.
type MissingFieldError struct {
	Timestamp string
	Missing   []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record %q missing fields: %s", e.Timestamp, strings.Join(e.Missing, ", "))
}

// ShapeMismatchError reports an assembled point that violates the
// all-fields-finite invariant.
type ShapeMismatchError struct {
	Timestamp string
	Field     string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("record %q: field %s is not finite", e.Timestamp, e.Field)
}

// DuplicateTimestampError reports two series keys resolving to the same instant.
type DuplicateTimestampError struct {
	Timestamp time.Time
}

func (e *DuplicateTimestampError) Error() string {
	return fmt.Sprintf("duplicate timestamp %s", e.Timestamp.Format(time.RFC3339))
}

// ParseError reports a field value that is not a decimal number, or a
// series key that is not a recognizable timestamp.
type ParseError struct {
	Label string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s=%q: %v", e.Label, e.Value, e.Err)
}
func (e *ParseError) Unwrap() error { return e.Err }

// InvalidRangeError reports malformed filter bounds or parameters.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string { return "invalid range: " + e.Reason }

// InsufficientDataError reports too few rows to attempt a fit.
type InsufficientDataError struct {
	Rows int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d rows", e.Rows)
}

// UnderdeterminedModelError reports a spline basis too large for the
// available support. Raised instead of silently producing an
// interpolating fit.
type UnderdeterminedModelError struct {
	SplineCount int
	Distinct    int
}

func (e *UnderdeterminedModelError) Error() string {
	return fmt.Sprintf("underdetermined model: spline_count=%d with %d distinct timestamps", e.SplineCount, e.Distinct)
}

// JoinError reports a filtered-view timestamp absent from its prediction
// grid. Unreachable when grid and view come from the same fit; the guard
// protects independent reuse of the components.
type JoinError struct {
	Timestamp time.Time
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("no prediction for timestamp %s", e.Timestamp.Format(time.RFC3339))
}
