package core

import (
	"github.com/cockroachdb/errors"
)

// Err is the root of the chronos error family. Every functional error
// returned by a manager or adapter matches Err, so callers can catch
// broadly with errors.Is(err, core.Err) or narrowly with the kind
// sentinels below.
var Err = errors.New("chronos")

// Error kinds. Each one also matches Err.
var (
	// ErrNotFound reports an identifier absent from the backend.
	ErrNotFound = errors.New("not found")

	// ErrValidation reports malformed attributes, such as a row whose
	// length does not match the table header count.
	ErrValidation = errors.New("validation failed")

	// ErrConflict reports an identifier that already exists on create,
	// or a concurrent modification detected by the backend.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable reports a transport or timeout failure from a
	// backend client.
	ErrUnavailable = errors.New("backend unavailable")
)

func markKind(err, kind error) error {
	return errors.Mark(errors.Mark(err, kind), Err)
}

// NotFoundf builds an ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return markKind(errors.NewWithDepthf(1, format, args...), ErrNotFound)
}

// Validationf builds an ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return markKind(errors.NewWithDepthf(1, format, args...), ErrValidation)
}

// Conflictf builds an ErrConflict with a formatted message.
func Conflictf(format string, args ...any) error {
	return markKind(errors.NewWithDepthf(1, format, args...), ErrConflict)
}

// Unavailablef builds an ErrUnavailable with a formatted message.
func Unavailablef(format string, args ...any) error {
	return markKind(errors.NewWithDepthf(1, format, args...), ErrUnavailable)
}

// WrapUnavailable marks a transport error as ErrUnavailable while keeping
// the cause chain intact.
func WrapUnavailable(err error, msg string) error {
	if err == nil {
		return nil
	}
	return markKind(errors.Wrap(err, msg), ErrUnavailable)
}

// IsNotFound reports whether err is an ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err is an ErrValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsConflict reports whether err is an ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsUnavailable reports whether err is an ErrUnavailable.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }

// IsFunctional reports whether err belongs to the chronos error family.
func IsFunctional(err error) bool { return errors.Is(err, Err) }
