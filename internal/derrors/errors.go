// Package derrors provides the error types of the paramkit host. Failures
// raised while parsing a command line are cmderr failures; these cover
// everything around them, such as loading the config or resolving a sender.
package derrors

import (
	"fmt"
)

// HostError is the base interface for host errors
type HostError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// DefinitionError reports a command definition that cannot be turned into a
// parameter tree
type DefinitionError struct {
	baseError
	Command string
	Field   string
}

// NewDefinitionError creates a new definition error
func NewDefinitionError(command, field, message string) *DefinitionError {
	return &DefinitionError{
		baseError: baseError{
			code:    "DEFINITION_ERROR",
			message: fmt.Sprintf("%s.%s: %s", command, field, message),
		},
		Command: command,
		Field:   field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
		},
		Resource: resource,
	}
}
