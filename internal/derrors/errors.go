// Package derrors holds the typed errors shared by mycli's packages.
//
// Each type marks where a failure came from:
//
//   - ConfigurationError: config.Load, config.Build and `mycli init`, for a
//     command table that cannot be read, parsed or compiled. Path names the
//     file or the command/option that failed.
//   - ValidationError: a single field rejected while compiling a table, such
//     as an exec.run line that does not split or an http.url template that
//     does not parse.
//   - AlreadyExistsError: the completion registry refusing a duplicate
//     command or option, and `mycli init` refusing to overwrite a table.
//   - NotFoundError: an unknown shell name in the shell and setup packages.
//   - SourceError: a dynamic lookup (http or exec) that failed at completion
//     time. The resolver logs it and suggests the unused options instead.
//
// Nothing here reaches the shell during completion. `mycli complete` logs the
// error on stderr and prints no candidates.
package derrors

import (
	"fmt"
)

// MycliError is implemented by every error in this package
type MycliError interface {
	error
	// Code is a stable identifier, e.g. SOURCE_ERROR
	Code() string
}

type baseError struct {
	code    string
	message string
	cause   error
}

func newBase(code, message string, cause error) baseError {
	return baseError{code: code, message: message, cause: cause}
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

// ConfigurationError is a command table that cannot be loaded or built
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError wraps cause with the table path or entry it concerns
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{baseError: newBase("CONFIG_ERROR", message, cause), Path: path}
}

// ValidationError is one rejected field of a table entry
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError reports field, e.g. "http.url" or "commands/edit/--mode"
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{baseError: newBase("VALIDATION_ERROR", message, cause), Field: field}
}

// NotFoundError is a name with nothing registered under it
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError reports the missing resource
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{baseError: newBase("NOT_FOUND", message, nil), Resource: resource}
}

// AlreadyExistsError is a command, option or file that is already there
type AlreadyExistsError struct {
	baseError
	Resource string
}

// NewAlreadyExistsError reports the duplicate resource
func NewAlreadyExistsError(resource string, message string) *AlreadyExistsError {
	return &AlreadyExistsError{baseError: newBase("ALREADY_EXISTS", message, nil), Resource: resource}
}

// SourceError is a failed http or exec lookup
type SourceError struct {
	baseError
	Source string
}

// NewSourceError wraps cause with the kind of source that failed
func NewSourceError(source string, message string, cause error) *SourceError {
	return &SourceError{baseError: newBase("SOURCE_ERROR", message, cause), Source: source}
}
