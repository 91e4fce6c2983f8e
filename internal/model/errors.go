package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure of a simulation request is exactly one of these
// and is terminal for the request.
var (
	// ErrInputFormat marks a malformed date or configuration field.
	ErrInputFormat = errors.New("invalid input")
	// ErrCollaboratorUnavailable marks forecast data that could not be loaded or produced.
	ErrCollaboratorUnavailable = errors.New("forecast unavailable")
	// ErrForecastShape marks forecast series that are not 24 aligned finite values.
	ErrForecastShape = errors.New("forecast shape")
	// ErrValidation marks out-of-bounds battery state or a degenerate consumption profile.
	ErrValidation = errors.New("validation failed")
)

// Error carries one of the error kinds above together with a user-facing
// message and optional diagnostic details.
type Error struct {
	Kind    error
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind error, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// InputFormatError builds an ErrInputFormat error.
func InputFormatError(format string, args ...any) *Error {
	return newError(ErrInputFormat, nil, format, args...)
}

// CollaboratorUnavailableError wraps the cause of a forecast failure.
func CollaboratorUnavailableError(cause error, format string, args ...any) *Error {
	e := newError(ErrCollaboratorUnavailable, cause, format, args...)
	if cause != nil {
		e.Details = map[string]any{"cause": cause.Error()}
	}
	return e
}

// ForecastShapeError builds an ErrForecastShape error.
func ForecastShapeError(format string, args ...any) *Error {
	return newError(ErrForecastShape, nil, format, args...)
}

// ValidationError builds an ErrValidation error.
func ValidationError(format string, args ...any) *Error {
	return newError(ErrValidation, nil, format, args...)
}

// KindOf returns the error kind of err, or nil when err carries none.
func KindOf(err error) error {
	for _, kind := range []error{ErrInputFormat, ErrCollaboratorUnavailable, ErrForecastShape, ErrValidation} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
