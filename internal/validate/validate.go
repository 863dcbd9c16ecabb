// SPDX-License-Identifier: MIT

// Package validate provides field validation utilities for site build configurations.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Error represents a validation error
type Error struct {
	Field   string // Field name that failed validation
	Value   any    // The invalid value
	Message string // Human-readable error message
}

// Error implements the error interface
func (e Error) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Validator accumulates validation errors and can produce a ValidationError when invalid.
type Validator struct {
	errors []Error
}

// ValidationError bundles multiple validation errors into a single error value.
type ValidationError struct {
	errors []Error
}

// New creates a new validator
func New() *Validator {
	return &Validator{
		errors: make([]Error, 0),
	}
}

// AddError adds a validation error
func (v *Validator) AddError(field, message string, value any) {
	v.errors = append(v.errors, Error{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

// IsValid returns true if no errors have been accumulated
func (v *Validator) IsValid() bool {
	return len(v.errors) == 0
}

// Errors returns all accumulated validation errors
func (v *Validator) Errors() []Error {
	return v.errors
}

// Err converts the accumulated validation errors into an error value.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}

	copied := make([]Error, len(v.errors))
	copy(copied, v.errors)

	return ValidationError{errors: copied}
}

// Errors returns the individual validation errors making up the validation failure.
func (e ValidationError) Errors() []Error {
	return e.errors
}

// Fields returns the names of the failing fields in the order they were reported.
func (e ValidationError) Fields() []string {
	out := make([]string, 0, len(e.errors))
	for _, fe := range e.errors {
		out = append(out, fe.Field)
	}
	return out
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	if len(e.errors) == 0 {
		return ""
	}

	if len(e.errors) == 1 {
		return e.errors[0].Error()
	}

	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// AsValidationError extracts a ValidationError from err, if one is wrapped.
func AsValidationError(err error) (ValidationError, bool) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return ValidationError{}, false
}

// Required records an error when a required value is missing.
func (v *Validator) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required", value)
		return false
	}
	return true
}

// URL validates an absolute URL string
func (v *Validator) URL(field, value string, allowedSchemes []string) {
	if value == "" {
		v.AddError(field, "URL cannot be empty", value)
		return
	}

	u, err := url.Parse(value)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid URL: %v", err), value)
		return
	}

	if !u.IsAbs() {
		v.AddError(field, "URL must be absolute", value)
		return
	}

	if u.Hostname() == "" {
		v.AddError(field, "URL must have a host", value)
		return
	}

	if len(allowedSchemes) > 0 && !slices.Contains(allowedSchemes, u.Scheme) {
		v.AddError(field,
			fmt.Sprintf("unsupported URL scheme %q (allowed: %v)", u.Scheme, allowedSchemes),
			value)
	}
}

// URLPath validates a URL path prefix such as "/blog".
func (v *Validator) URLPath(field, value string) {
	if value == "" {
		v.AddError(field, "path cannot be empty", value)
		return
	}
	if !strings.HasPrefix(value, "/") {
		v.AddError(field, "path must start with \"/\"", value)
		return
	}
	if strings.ContainsAny(value, "?#\\ \t\r\n") {
		v.AddError(field, "path must not contain query, fragment, backslash or whitespace", value)
		return
	}
	for _, seg := range strings.Split(value, "/") {
		if seg == ".." || seg == "." {
			v.AddError(field, "path must not contain dot segments", value)
			return
		}
	}
	if _, err := url.Parse(value); err != nil {
		v.AddError(field, fmt.Sprintf("invalid path: %v", err), value)
	}
}

// NotEmpty validates that a string is not empty or whitespace-only
func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "value cannot be empty", value)
	}
}

// OneOf validates that a value is one of the allowed values
func (v *Validator) OneOf(field, value string, allowed []string) {
	if slices.Contains(allowed, value) {
		return
	}
	v.AddError(field,
		fmt.Sprintf("value must be one of %v, got %q", allowed, value),
		value)
}

// Known validates that a name resolves in a registry.
func (v *Validator) Known(field, kind, name string, known func(string) bool) {
	if strings.TrimSpace(name) == "" {
		v.AddError(field, kind+" name cannot be empty", name)
		return
	}
	if !known(name) {
		v.AddError(field, fmt.Sprintf("unknown %s %q", kind, name), name)
	}
}
