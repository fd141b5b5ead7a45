package services

import (
	"errors"
	"fmt"
)

const (
	CodeMissingField = "missing_field"
	CodeInvalidEnum  = "invalid_enum"
	CodeInvalidDate  = "invalid_date"
)

// ValidationError is user-correctable and surfaced verbatim to the
// caller. Code is one of the Code* constants, Field names the offending
// request field.
type ValidationError struct {
	Code  string
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Field)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Code: CodeMissingField, Field: field}
}

// ErrStorageFailure marks transient storage errors from the submission
// workflow. Callers retry or surface a generic failure; the wrapped
// cause is preserved for logs.
var ErrStorageFailure = errors.New("storage failure")

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("not authenticated")
	ErrForbidden    = errors.New("forbidden")
)
