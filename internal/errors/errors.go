// Package errors defines the ingestion error taxonomy. Errors carry a
// stable code so callers can decide the skip/abort policy without string
// matching: format, naming and aggregation problems skip the offending file
// or day, a missing required dataset or a persistence failure aborts the run.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an ingestion error.
type ErrorCode string

const (
	// CodeFormat means a raw file's content does not match the expected
	// row/column shape or types. Non-fatal: the file is skipped.
	CodeFormat ErrorCode = "FORMAT_ERROR"

	// CodeNaming means a filename does not match the expected pattern or
	// encodes an unrecognized revision. Non-fatal: the file is skipped.
	CodeNaming ErrorCode = "NAMING_ERROR"

	// CodeAggregation means a quarter-hour day does not decompose into 24
	// complete blocks of 4. Fatal for that day, non-fatal to the run.
	CodeAggregation ErrorCode = "AGGREGATION_ERROR"

	// CodeMissingDataset means a required persisted dataset is absent.
	// Recoverable as a cold start unless the caller demands the artifact.
	CodeMissingDataset ErrorCode = "MISSING_DATASET"

	// CodePersistence means an output artifact could not be written.
	// Fatal: the prior persisted dataset must remain untouched.
	CodePersistence ErrorCode = "PERSISTENCE_ERROR"
)

// IngestError is an error with a taxonomy code and an optional cause.
type IngestError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *IngestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *IngestError) Unwrap() error {
	return e.Cause
}

// Is matches two IngestErrors by code, so sentinel comparisons like
// errors.Is(err, errors.Format("")) work without identity.
func (e *IngestError) Is(target error) bool {
	var other *IngestError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// New creates an IngestError with the given code and message.
func New(code ErrorCode, message string) *IngestError {
	return &IngestError{Code: code, Message: message}
}

// Newf creates an IngestError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *IngestError {
	return &IngestError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(code ErrorCode, cause error, message string) *IngestError {
	return &IngestError{Code: code, Message: message, Cause: cause}
}

// Format builds a FORMAT_ERROR.
func Format(format string, args ...any) *IngestError {
	return Newf(CodeFormat, format, args...)
}

// Naming builds a NAMING_ERROR.
func Naming(format string, args ...any) *IngestError {
	return Newf(CodeNaming, format, args...)
}

// Aggregation builds an AGGREGATION_ERROR.
func Aggregation(format string, args ...any) *IngestError {
	return Newf(CodeAggregation, format, args...)
}

// MissingDataset builds a MISSING_DATASET error.
func MissingDataset(format string, args ...any) *IngestError {
	return Newf(CodeMissingDataset, format, args...)
}

// Persistence builds a PERSISTENCE_ERROR wrapping the write failure.
func Persistence(cause error, format string, args ...any) *IngestError {
	return &IngestError{Code: CodePersistence, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf extracts the taxonomy code from err, or "" if err carries none.
func CodeOf(err error) ErrorCode {
	var ie *IngestError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}

// IsSkippable reports whether err is non-fatal to the run: the offending
// file or day is dropped with a warning and processing continues.
func IsSkippable(err error) bool {
	switch CodeOf(err) {
	case CodeFormat, CodeNaming, CodeAggregation:
		return true
	}
	return false
}
