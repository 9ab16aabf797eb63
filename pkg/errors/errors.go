package errors

import (
	"errors"
	"fmt"
)

// FieldError describes a validation failure on a single request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error represents a typed domain error returned to the immediate caller.
type Error struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so clones still compare equal to the predefined values.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound            = New("NOT_FOUND", "resource not found")
	ErrForbidden           = New("FORBIDDEN", "forbidden")
	ErrValidation          = New("VALIDATION_ERROR", "validation failed")
	ErrInternal            = New("INTERNAL_ERROR", "internal error")
	ErrDuplicateEnrollment = New("DUPLICATE_ENROLLMENT", "student already enrolled in course")
	ErrMaterialNotFound    = New("MATERIAL_NOT_FOUND", "material not found in course")
	ErrInvalidTransition   = New("INVALID_TRANSITION", "invalid assignment transition")
	ErrInvalidGrade        = New("INVALID_GRADE", "grade out of range")
	ErrUnsupportedFormat   = New("UNSUPPORTED_FORMAT", "unsupported export format")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithFields returns a copy of err carrying the given field errors.
func WithFields(err *Error, fields []FieldError) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Fields = append([]FieldError(nil), fields...)
	return &clone
}
