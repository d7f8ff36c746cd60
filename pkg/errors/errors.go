// Package errors provides structured error types for the sankey application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP host and the library
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - Domain codes (NEGATIVE_VALUE, CONSERVATION, DATA_VIEW, EXPIRED_SNAPSHOT)
//     raised while laying out a snapshot
//   - INTERNAL_*: Unexpected internal errors
//
// # Render Errors
//
// Four typed errors describe why a render was abandoned. All of them are
// detected before any draw command is issued:
//
//   - [DataViewError]: the host reported data errors; show the overlay.
//   - [ExpiredSnapshotError]: the snapshot went stale; abort silently.
//   - [NegativeValueError]: a row measure is negative; fatal for the diagram.
//   - [ConservationError]: level totals disagree; fatal for the diagram.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown column: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	var neg *errors.NegativeValueError
//	if stderrors.As(err, &neg) {
//	    fmt.Println("row", neg.Row)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidCanvas Code = "INVALID_CANVAS"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Render errors
	ErrCodeNegativeValue   Code = "NEGATIVE_VALUE"
	ErrCodeConservation    Code = "CONSERVATION"
	ErrCodeDataView        Code = "DATA_VIEW"
	ErrCodeExpiredSnapshot Code = "EXPIRED_SNAPSHOT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by the typed render errors.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a typed render error
// with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err invalidates the data for this diagram type.
// Fatal errors must be surfaced to the user; the others (data view errors,
// expired snapshots) leave the previous rendering in place.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeNegativeValue, ErrCodeConservation:
		return true
	}
	return false
}

// =============================================================================
// Render Errors
// =============================================================================

// NegativeValueError reports a row whose measure is below zero.
type NegativeValueError struct {
	Row   int     // Row identity
	Value float64 // Offending measure
}

// Error implements the error interface.
func (e *NegativeValueError) Error() string {
	return fmt.Sprintf("sankey can not display negative values: row %d has value %g", e.Row, e.Value)
}

// Code returns the error code for this error type.
func (e *NegativeValueError) Code() Code { return ErrCodeNegativeValue }

// ConservationError reports levels whose summed totals are not equal.
type ConservationError struct {
	Totals []float64 // Sum of category totals per level
}

// Error implements the error interface.
func (e *ConservationError) Error() string {
	parts := make([]string, len(e.Totals))
	for i, t := range e.Totals {
		parts[i] = fmt.Sprintf("level %d=%g", i, t)
	}
	return "count in bars does not match: " + strings.Join(parts, ", ")
}

// Code returns the error code for this error type.
func (e *ConservationError) Code() Code { return ErrCodeConservation }

// DataViewError carries the error list reported by the host.
type DataViewError struct {
	Messages []string
}

// Error implements the error interface.
func (e *DataViewError) Error() string {
	return "data view has errors: " + strings.Join(e.Messages, "; ")
}

// Code returns the error code for this error type.
func (e *DataViewError) Code() Code { return ErrCodeDataView }

// ExpiredSnapshotError reports a snapshot that became unavailable before the
// render finished.
type ExpiredSnapshotError struct {
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *ExpiredSnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot expired: %s: %v", e.Reason, e.Cause)
	}
	return "snapshot expired: " + e.Reason
}

// Unwrap returns the underlying cause (typically a context error).
func (e *ExpiredSnapshotError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *ExpiredSnapshotError) Code() Code { return ErrCodeExpiredSnapshot }
