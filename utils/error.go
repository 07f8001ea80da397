package utils

import (
	"errors"
	"net/http"
	"strings"
)

var ErrorRecordNotFound = errors.New("record not found")

// ErrorKind is the stable machine-readable classification surfaced to API
// callers alongside the human-readable message.
type ErrorKind string

const (
	ErrorKindValidation   ErrorKind = "ValidationError"
	ErrorKindConflict     ErrorKind = "Conflict"
	ErrorKindNotFound     ErrorKind = "NotFound"
	ErrorKindForbidden    ErrorKind = "Forbidden"
	ErrorKindBusinessRule ErrorKind = "BusinessRuleViolation"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewValidationError(message string) *Error {
	return &Error{Kind: ErrorKindValidation, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: ErrorKindConflict, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrorKindNotFound, Message: message}
}

func NewForbiddenError(message string) *Error {
	return &Error{Kind: ErrorKindForbidden, Message: message}
}

func NewBusinessRuleError(message string) *Error {
	return &Error{Kind: ErrorKindBusinessRule, Message: message}
}

// HTTPStatus maps an error kind to its response status. Unclassified errors
// come back as 500 so storage internals never leak into API semantics.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case ErrorKindValidation:
		return http.StatusBadRequest
	case ErrorKindConflict:
		return http.StatusConflict
	case ErrorKindNotFound:
		return http.StatusNotFound
	case ErrorKindForbidden:
		return http.StatusForbidden
	case ErrorKindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// KindOf returns the kind for classified errors and an empty kind otherwise.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// MapStorageError translates MySQL integrity violations into the taxonomy at
// the store boundary: duplicate keys become Conflict, bad references become
// Validation. Anything else passes through untouched.
func MapStorageError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Error 1062"), strings.Contains(msg, "Duplicate entry"):
		return NewConflictError("record already exists")
	case strings.Contains(msg, "Error 1452"), strings.Contains(msg, "foreign key constraint"):
		return NewValidationError("invalid reference")
	}
	return err
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
