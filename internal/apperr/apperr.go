// Package apperr defines the error taxonomy used across handlers, services
// and repositories. Every failure that reaches a handler is one of these
// kinds; anything else is treated as a dependency failure.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindDependency
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Dependency wraps a store or media-host failure. The original cause is kept
// for logging but never serialized to clients.
func Dependency(msg string, err error) *Error {
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

// KindOf extracts the kind from an error chain. Unclassified errors report
// KindDependency so handlers never leak internals.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindAuthentication:
		return fiber.StatusUnauthorized
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns the client-facing message for an error. Dependency causes
// are replaced with a generic message.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == KindDependency {
			return "Something went wrong"
		}
		return e.Message
	}
	return "Something went wrong"
}
