// Package errors provides standardized error handling for codecity.
// It defines the error kinds host code reports (file system, configuration,
// data sources) and helpers for consistent creation, wrapping and checking.
// The highlight engine itself never returns errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrNotGitRepo    = NewSourceError("not a git work tree", "git", SourceUnavailable, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	FileOperationFailed
	// Config error kinds
	InvalidConfig
	InvalidPattern
	// Data source error kinds
	SourceUnavailable
	SourceParseFailed
	GitCommandFailed
	InvalidInputData
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// SourceError represents errors raised while loading a data source
// (git status, quality reports, annotation feeds).
type SourceError struct {
	ApplicationError
	source string
}

// NewSourceError creates a new data source error
func NewSourceError(msg string, source string, kind ErrorKind, err error) *SourceError {
	return &SourceError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		source: source,
	}
}

// Error returns the source error message
func (e *SourceError) Error() string {
	if e.source != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.source, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.source)
	}
	return e.ApplicationError.Error()
}

// Source returns the name of the data source
func (e *SourceError) Source() string {
	return e.source
}

// Is matches source errors by kind and source name so sentinel values such
// as ErrNotGitRepo work with errors.Is.
func (e *SourceError) Is(target error) bool {
	t, ok := target.(*SourceError)
	if !ok {
		return false
	}
	return t.kind == e.kind && t.source == e.source
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig || configErr.Kind() == InvalidPattern
	}
	return false
}

// IsSourceError checks if the error came from a data source
func IsSourceError(err error) bool {
	var srcErr *SourceError
	return errors.As(err, &srcErr)
}

// InvalidInputError represents errors related to invalid input data
type InvalidInputError struct {
	ApplicationError
	context map[string]interface{}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(msg string, err error) *InvalidInputError {
	return &InvalidInputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidInputData,
		},
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the invalid input error
func (e *InvalidInputError) WithContext(key string, value interface{}) *InvalidInputError {
	e.context[key] = value
	return e
}

// Error returns the invalid input error message
func (e *InvalidInputError) Error() string {
	return e.ApplicationError.Error()
}

// Context returns the context information associated with the error
func (e *InvalidInputError) Context() map[string]interface{} {
	return e.context
}
