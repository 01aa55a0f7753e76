// Package errors holds the error types returned at the edges of a
// reconciliation run. Ambiguous variants are never errors: they are reported
// as warnings on the merged value. These types cover missing or malformed
// variant files, invalid options and cancelled runs.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New is errors.New.
var New = errors.New

// As is errors.As.
var As = errors.As

// Is is errors.Is.
var Is = errors.Is

// Sentinels matched by the typed errors below.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrCanceled     = errors.New("reconciliation canceled")
	ErrUnresolved   = errors.New("unresolved fields")
)

// NotFoundError reports a variant file that does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("variant file %s does not exist", e.Path)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Err }

// NewNotFoundError records that path could not be opened because it is absent.
func NewNotFoundError(path string, err error) *NotFoundError {
	return &NotFoundError{Path: path, Err: err}
}

// ValidationError rejects an option or a piece of input before any field is
// merged.
type ValidationError struct {
	Field   string
	Value   any
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError rejects value for field.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError is returned when the command line, environment or config file
// cannot produce a usable reconciler.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "bad configuration: " + e.Message
	}
	return fmt.Sprintf("bad %s configuration: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err as a problem with component's settings.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError reports a variant document that could not be decoded.
type ParseError struct {
	Format  string // "json" or "yaml"
	File    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("malformed %s variants: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("malformed %s variants in %s: %s", e.Format, e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrInvalidInput }

// NewParseError reports message against file.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError wraps a failed read or write of a variant file or report.
type IOError struct {
	Operation string // "read" or "write"
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps err from operation on path.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// FieldError ties a failure to the field key being reconciled.
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("reconcile field %q: %v", e.Key, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewFieldError wraps err for key.
func NewFieldError(key string, err error) *FieldError {
	return &FieldError{Key: key, Err: err}
}

// UnresolvedError lists the field keys whose merged value needs manual review.
type UnresolvedError struct {
	Keys []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%d field(s) need manual review: %s", len(e.Keys), strings.Join(e.Keys, ", "))
}

func (e *UnresolvedError) Is(target error) bool { return target == ErrUnresolved }

// NewUnresolvedError lists keys for manual review.
func NewUnresolvedError(keys []string) *UnresolvedError {
	return &UnresolvedError{Keys: keys}
}

// IsNotFound reports whether err is a missing variant file.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError reports whether err rejects input or an option.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsCanceled reports whether err stopped a run part way through.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// IsUnresolved reports whether err lists fields needing manual review.
func IsUnresolved(err error) bool { return errors.Is(err, ErrUnresolved) }

// WrapValidation turns err into a ValidationError for field, keeping value
// for callers that report it.
func WrapValidation(field string, value any, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Value: value, Message: err.Error(), Err: err}
}

// WrapIO wraps a failed read or write.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps a decoder error from file.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapCanceled wraps a context error for key so that IsCanceled reports true.
func WrapCanceled(key string, err error) error {
	if err == nil {
		return nil
	}
	return NewFieldError(key, fmt.Errorf("%w: %w", ErrCanceled, err))
}
