package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind partitions failures by who is at fault and how they propagate.
type Kind string

const (
	KindValidation      Kind = "VALIDATION_ERROR"
	KindContentTooLarge Kind = "CONTENT_TOO_LARGE"
	KindClassification  Kind = "LLM_SERVICE_ERROR"
	KindPersistence     Kind = "DATABASE_ERROR"
	KindNotification    Kind = "NOTIFICATION_SERVICE_ERROR"
)

// Error is the typed error surfaced to API consumers as
// {error_kind, message, details}.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]interface{}
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// WithDetail attaches a key/value pair to the error response details.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func ContentTooLarge(message string, max, actual int) *Error {
	return New(KindContentTooLarge, message).
		WithDetail("max_size", max).
		WithDetail("actual_size", actual)
}

func Classification(cause error) *Error {
	return Wrap(KindClassification, "classification failed", cause)
}

func Persistence(operation string, cause error) *Error {
	return Wrap(KindPersistence, "persistence failed", cause).WithDetail("operation", operation)
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(kind Kind) int {
	switch kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindContentTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case KindClassification:
		return fiber.StatusServiceUnavailable
	case KindNotification:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
