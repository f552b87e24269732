package errors

import (
	crerr "github.com/cockroachdb/errors"
)

// Error kinds. Business sentinels are marked with one of these so that
// callers can decide the response class without knowing every sentinel.
var (
	ErrValidation       = crerr.New("validation failed")
	ErrNotFound         = crerr.New("not found")
	ErrPermissionDenied = crerr.New("permission denied")
	ErrConflict         = crerr.New("conflict")
)

// ErrOptimisticLock the row was modified by another request.
var ErrOptimisticLock = crerr.Mark(crerr.New("record was modified by another request, reload and retry"), ErrConflict)

// New returns a sentinel error with message msg marked as kind.
func New(kind error, msg string) error {
	return crerr.Mark(crerr.New(msg), kind)
}

// Validationf builds an ad-hoc validation error.
func Validationf(format string, args ...interface{}) error {
	return crerr.Mark(crerr.Newf(format, args...), ErrValidation)
}

// Kind returns the kind marker carried by err, or nil for unexpected errors.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrNotFound, ErrPermissionDenied, ErrConflict} {
		if crerr.Is(err, k) {
			return k
		}
	}
	return nil
}

// Message returns the user-facing message of a marked error. Unexpected
// errors never leak their text.
func Message(err error) string {
	if Kind(err) == nil {
		return "internal server error"
	}
	return err.Error()
}
