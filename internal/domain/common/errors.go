// internal/domain/common/errors.go
package common

import (
	"errors"
	"strings"
)

// Error taxonomy shared by every layer.
// Domain packages wrap these so that errors.Is classifies any error returned by a port.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrRemoteFailure   = errors.New("remote failure")
	ErrValidation      = errors.New("validation failure")
)

// ValidationError is a form-level failure detected before any remote call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if strings.TrimSpace(e.Field) == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a *ValidationError.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// Remote marks err as an opaque remote failure unless it is already classified.
func Remote(op string, err error) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return err
	}
	return &remoteError{op: op, err: err}
}

type remoteError struct {
	op  string
	err error
}

func (e *remoteError) Error() string {
	return e.op + ": " + ErrRemoteFailure.Error() + ": " + e.err.Error()
}

func (e *remoteError) Unwrap() []error { return []error{ErrRemoteFailure, e.err} }

// Classified reports whether err already carries one of the taxonomy sentinels.
func Classified(err error) bool {
	for _, s := range []error{
		ErrUnauthenticated, ErrForbidden, ErrNotFound,
		ErrConflict, ErrRemoteFailure, ErrValidation,
	} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
