// Package errs defines the failure taxonomy of the data-access layer.
//
// Every store operation that fails reports a *StoreError carrying the
// failure kind, the operation name, and the underlying cause, so
// callers can tell a transport problem from a bad statement without
// parsing driver error strings. Not-found is never represented here;
// it is an empty result, not an error.
package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes a store failure.
type Kind string

const (
	// KindConnectivity covers unreachable-store and timeout failures.
	KindConnectivity Kind = "connectivity"

	// KindStatement covers statement failures: malformed SQL,
	// constraint violations, type mismatches.
	KindStatement Kind = "statement"

	// KindOther covers failures the classifier could not place.
	KindOther Kind = "other"
)

// StoreError is the error type returned by store operations.
type StoreError struct {
	// Kind is the failure category.
	Kind Kind

	// Op names the failing operation, e.g. "get_farmer".
	Op string

	// Table is the table the statement targeted, when known.
	Table string

	// Err is the underlying driver error.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s: %s failure on %s: %v", e.Op, e.Kind, e.Table, e.Err)
	}
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports a match for any *StoreError target, so
// errors.Is(err, &errs.StoreError{}) checks the type without
// comparing fields.
func (e *StoreError) Is(target error) bool {
	_, ok := target.(*StoreError)
	return ok
}

// New wraps err as a StoreError of the given kind.
func New(kind Kind, op, table string, err error) *StoreError {
	return &StoreError{Kind: kind, Op: op, Table: table, Err: err}
}

// KindOf reports the Kind of err, or KindOther when err is not a
// StoreError.
func KindOf(err error) Kind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindOther
}
