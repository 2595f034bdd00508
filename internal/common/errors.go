package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorKind is the machine-distinguishable error class surfaced to clients.
type ErrorKind string

const (
	KindValidation   ErrorKind = "ValidationError"
	KindNotFound     ErrorKind = "NotFoundError"
	KindConflict     ErrorKind = "ConflictError"
	KindInvalidState ErrorKind = "InvalidStateError"
	KindInternal     ErrorKind = "InternalError"
)

// DomainError carries the error kind plus enough detail for the caller to
// correct its input. Field is set for validation errors tied to one field.
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// HTTPStatus maps the error kind onto an HTTP response code.
func (e *DomainError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(field, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message, Field: field}
}

func NewNotFoundError(resource string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: resource + " not found"}
}

func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

func NewInvalidStateError(message string) *DomainError {
	return &DomainError{Kind: KindInvalidState, Message: message}
}

// Kind helpers for callers that branch on the error class (retry on conflict).

func IsValidation(err error) bool   { return hasKind(err, KindValidation) }
func IsNotFound(err error) bool     { return hasKind(err, KindNotFound) }
func IsConflict(err error) bool     { return hasKind(err, KindConflict) }
func IsInvalidState(err error) bool { return hasKind(err, KindInvalidState) }

func hasKind(err error, kind ErrorKind) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// ErrorResponse is the standard error payload: a detail object with the error
// kind, message and optional field name.
type ErrorResponse struct {
	Detail DomainError `json:"detail"`
}

// SendError writes err as the standard JSON error payload. Unrecognized
// errors are reported as internal without leaking their message.
func SendError(c echo.Context, err error) error {
	var de *DomainError
	if errors.As(err, &de) {
		return c.JSON(de.HTTPStatus(), &ErrorResponse{Detail: *de})
	}
	return c.JSON(http.StatusInternalServerError, &ErrorResponse{
		Detail: DomainError{Kind: KindInternal, Message: "internal server error"},
	})
}
