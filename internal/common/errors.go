package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrConflict           = errors.New("resource already exists")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyResolved    = errors.New("item already resolved")
	ErrUpload             = errors.New("asset upload failed")
	ErrStore              = errors.New("store failure")
)

// Error carries a caller-facing message on top of one of the sentinel kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Newf builds an *Error of the given kind.
func Newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrAlreadyResolved):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text that may be shown to a client for err.
// Anything that maps to a 500 collapses to fallback so internals never leak.
func PublicMessage(err error, fallback string) string {
	if HTTPStatusFromError(err) == http.StatusInternalServerError {
		return fallback
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	for _, kind := range []error{
		ErrValidation, ErrInvalidCredentials, ErrConflict, ErrUnauthenticated,
		ErrForbidden, ErrNotFound, ErrAlreadyResolved,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return fallback
}
