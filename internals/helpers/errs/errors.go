// file: internals/helpers/errs/errors.go
package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a domain failure independent of transport.
type Kind string

const (
	KindValidation          Kind = "validation_error"
	KindUniquenessConflict  Kind = "uniqueness_conflict"
	KindTenantMismatch      Kind = "tenant_mismatch"
	KindInvalidTransition   Kind = "invalid_transition"
	KindCapacityExceeded    Kind = "capacity_exceeded"
	KindAuthorizationDenied Kind = "authorization_denied"
	KindNotFound            Kind = "not_found"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// HTTPStatus maps the domain kind onto a response code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	case KindUniquenessConflict:
		return fiber.StatusConflict
	case KindTenantMismatch:
		return fiber.StatusForbidden
	case KindInvalidTransition:
		return fiber.StatusConflict
	case KindCapacityExceeded:
		return fiber.StatusConflict
	case KindAuthorizationDenied:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindUniquenessConflict, format, args...)
}

func TenantMismatch(format string, args ...any) *Error {
	return New(KindTenantMismatch, format, args...)
}

func InvalidTransition(from, to string) *Error {
	return New(KindInvalidTransition, "invalid status transition %s → %s", from, to)
}

func CapacityExceeded(format string, args ...any) *Error {
	return New(KindCapacityExceeded, format, args...)
}

func Denied(format string, args ...any) *Error {
	return New(KindAuthorizationDenied, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}
