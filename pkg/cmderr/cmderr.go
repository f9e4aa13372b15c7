// Package cmderr provides the failure taxonomy shared by parameters and commands.
// Every failure carries a code for programmatic handling and, where it makes
// sense, the byte offset in the input line that caused it.
package cmderr

import (
	"errors"
	"fmt"
	"strings"
)

// MaxDisplayed is the number of sub-failures rendered by Multiple.Error
const MaxDisplayed = 5

// NoPosition marks a failure that is not tied to a specific token
const NoPosition = -1

// Failure is the base interface for all command failures
type Failure interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
	// Position returns the byte offset of the offending token, or NoPosition
	Position() int
}

// baseError provides common functionality for all failures
type baseError struct {
	code    string
	message string
	pos     int
	cause   error
}

func (e *baseError) Error() string {
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Position() int {
	return e.pos
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ErrorFailure is a generic failure that is not tied to the input
type ErrorFailure struct {
	baseError
}

// NewError creates a generic failure
func NewError(message string) *ErrorFailure {
	return &ErrorFailure{
		baseError: baseError{
			code:    "COMMAND_ERROR",
			message: message,
			pos:     NoPosition,
		},
	}
}

// SyntaxError is raised for malformed token content
type SyntaxError struct {
	baseError
}

// NewSyntaxError creates a syntax error at pos
func NewSyntaxError(message string, pos int) *SyntaxError {
	return &SyntaxError{
		baseError: baseError{
			code:    "SYNTAX_ERROR",
			message: message,
			pos:     pos,
		},
	}
}

// WrapSyntaxError creates a syntax error at pos carrying the message of cause
func WrapSyntaxError(cause error, pos int) *SyntaxError {
	err := NewSyntaxError(cause.Error(), pos)
	err.cause = cause
	return err
}

// NotEnoughArgs is returned when a parameter needs a token but none is left
func NotEnoughArgs() *SyntaxError {
	return NewSyntaxError("Not enough arguments", NoPosition)
}

// UsageError is raised for input that is well formed but rejected
type UsageError struct {
	baseError
}

// NewUsageError creates a usage error at pos
func NewUsageError(message string, pos int) *UsageError {
	return &UsageError{
		baseError: baseError{
			code:    "USAGE_ERROR",
			message: message,
			pos:     pos,
		},
	}
}

// Multiple aggregates failures from alternatives that all failed
type Multiple struct {
	Failures []Failure
}

// Error renders at most MaxDisplayed sub-failures, one per line
func (m *Multiple) Error() string {
	shown := m.Failures
	if len(shown) > MaxDisplayed {
		shown = shown[:MaxDisplayed]
	}

	msgs := make([]string, 0, len(shown))
	for _, f := range shown {
		msgs = append(msgs, f.Error())
	}
	return strings.Join(msgs, "\n")
}

// Code implements Failure
func (m *Multiple) Code() string {
	return "MULTIPLE_ERRORS"
}

// Position returns the position of the first positioned sub-failure
func (m *Multiple) Position() int {
	for _, f := range m.Failures {
		if pos := f.Position(); pos != NoPosition {
			return pos
		}
	}
	return NoPosition
}

// Unwrap exposes the sub-failures to errors.Is and errors.As
func (m *Multiple) Unwrap() []error {
	errs := make([]error, 0, len(m.Failures))
	for _, f := range m.Failures {
		errs = append(errs, f)
	}
	return errs
}

// From converts any error into a Failure. Failures are returned as is, other
// errors become an ErrorFailure wrapping them.
func From(err error) Failure {
	if err == nil {
		return nil
	}
	var f Failure
	if errors.As(err, &f) {
		return f
	}
	wrapped := NewError(err.Error())
	wrapped.cause = err
	return wrapped
}

// Merge combines two failures into a single Multiple. Existing Multiple values
// are flattened rather than nested.
func Merge(a, b error) *Multiple {
	var failures []Failure
	for _, err := range []error{a, b} {
		if err == nil {
			continue
		}
		f := From(err)
		if m, ok := f.(*Multiple); ok {
			failures = append(failures, m.Failures...)
			continue
		}
		failures = append(failures, f)
	}
	return &Multiple{Failures: failures}
}

// Errorf creates a generic failure with a formatted message
func Errorf(format string, args ...any) *ErrorFailure {
	return NewError(fmt.Sprintf(format, args...))
}
