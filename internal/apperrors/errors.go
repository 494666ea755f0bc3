package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a domain error so the API layer can map it to an HTTP
// status without inspecting message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindForbidden
	KindUnauthorized
	KindConfiguration
)

// Error is a domain error carrying a Kind. Services wrap these with
// fmt.Errorf("...: %w", err) to add context; Unwrap keeps the kind reachable.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports that an entity does not exist.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed or out-of-range input.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness or state conflict.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Forbidden reports an authorization failure for an authenticated caller.
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized reports an authentication failure.
func Unauthorized(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Configuration reports missing required reference data, e.g. an unseeded
// canonical order status. These are operator errors, not user errors.
func Configuration(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

// Domain sentinels the order workflow distinguishes. Callers add context by
// wrapping with fmt.Errorf("...: %w", ...) so errors.Is still matches.
var (
	ErrInsufficientStock  = Conflict("insufficient stock")
	ErrProductUnavailable = Conflict("product is currently unavailable")
	ErrInvalidTransition  = Conflict("only pending orders can be canceled")
	ErrInvalidStatus      = Validation("invalid order status")
)

// KindOf returns the Kind of err, unwrapping as needed, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusCode maps a domain error to its HTTP status. Unclassified errors map
// to 500.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	case KindForbidden:
		return fiber.StatusForbidden
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// IsExpected reports whether err is a classified domain error whose message is
// safe to return to the client. Configuration errors and unknown errors are
// surfaced as a generic 500 with no internal detail.
func IsExpected(err error) bool {
	switch KindOf(err) {
	case KindNotFound, KindValidation, KindConflict, KindForbidden, KindUnauthorized:
		return true
	default:
		return false
	}
}
