// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"

	"github.com/ishanbagchi/sitecfg/internal/validate"
)

var (
	// ErrConfiguration classifies every configuration failure.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnknownConfigField classifies strict parse failures caused by unknown keys.
	// Use errors.Is(err, ErrUnknownConfigField) instead of string matching.
	ErrUnknownConfigField = errors.New("unknown config field")
)

// ConfigurationError is raised when a field is missing, malformed or refers to
// an unknown theme or integration.
type ConfigurationError struct {
	Path string // config file, empty for in-memory definitions
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("configuration error in %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is makes every ConfigurationError match ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// Fields lists the failing fields when the error carries validation results.
func (e *ConfigurationError) Fields() []string {
	if ve, ok := validate.AsValidationError(e.Err); ok {
		return ve.Fields()
	}
	return nil
}

func withPath(err error, path string) error {
	var ce *ConfigurationError
	if errors.As(err, &ce) && ce.Path == "" {
		return &ConfigurationError{Path: path, Err: ce.Err}
	}
	return err
}
