package domain

import "fmt"

// ValidationError reports bad input. Field names the first offending field so
// the API can point the client at it. Never retryable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// DataAccessError wraps any failure surfaced by the record store. Callers treat
// it as opaque; retry policy is theirs to decide.
type DataAccessError struct {
	Op    string
	Table string
	Err   error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s on table %s failed: %v", e.Op, e.Table, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}
