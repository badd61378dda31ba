// Package derrors provides custom error types for looptimer.
// Every error carries a stable code so callers can branch on it without
// parsing messages.
package derrors

import (
	"fmt"
)

// LooptimerError is the base interface for all looptimer errors
type LooptimerError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all looptimer errors
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

// NestingReason tells why an End call was rejected
type NestingReason int

const (
	// EmptyStack means End was called while no timer was active
	EmptyStack NestingReason = iota
	// Mismatch means End named a timer other than the innermost active one
	Mismatch
)

// String returns the reason label
func (r NestingReason) String() string {
	if r == EmptyStack {
		return "empty stack"
	}
	return "mismatch"
}

// NestingError reports a begin/end pair that is not strictly LIFO
type NestingError struct {
	baseError
	Reason NestingReason
	// Timer is the name passed to End
	Timer string
	// Expected is the innermost active timer, empty for EmptyStack
	Expected string
}

// NewNestingError creates a nesting error
func NewNestingError(reason NestingReason, timer, expected string) *NestingError {
	var message string
	switch reason {
	case EmptyStack:
		message = fmt.Sprintf("end(%s) called while no timer was begun", timer)
	default:
		message = fmt.Sprintf("end(%s) does not match last begin(%s)", timer, expected)
	}
	return &NestingError{
		baseError: baseError{
			code:    "NESTING_ERROR",
			message: message,
		},
		Reason:   reason,
		Timer:    timer,
		Expected: expected,
	}
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

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// TemplateError represents a report summary template that failed to parse or render
type TemplateError struct {
	baseError
	Template string
}

// NewTemplateError creates a new template error
func NewTemplateError(template string, message string, cause error) *TemplateError {
	return &TemplateError{
		baseError: baseError{
			code:    "TEMPLATE_ERROR",
			message: message,
			cause:   cause,
		},
		Template: template,
	}
}
