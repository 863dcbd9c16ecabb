// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a configuration file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "yaml", "yml" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported config format: %q (yaml or json)", s)
	}
}

// FormatForPath derives the format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported config format: %s (only .yaml, .yml and .json supported)", ext)
	}
}

// Unmarshal decodes a single configuration document with STRICT parsing.
// Unknown fields fail with ErrUnknownConfigField. An empty document yields an
// empty FileConfig.
func Unmarshal(data []byte, format Format) (FileConfig, error) {
	var (
		fc  FileConfig
		err error
	)
	switch format {
	case FormatYAML:
		fc, err = decodeYAML(data)
	case FormatJSON:
		fc, err = decodeJSON(data)
	default:
		err = fmt.Errorf("unsupported config format: %q", format)
	}
	if err != nil {
		return FileConfig{}, &ConfigurationError{Err: err}
	}
	return fc, nil
}

func decodeYAML(data []byte) (FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields

	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return FileConfig{}, nil
		}
		if isUnknownFieldError(err) {
			return FileConfig{}, fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
		}
		return FileConfig{}, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return fc, nil
}

func decodeJSON(data []byte) (FileConfig, error) {
	var fc FileConfig
	if len(bytes.TrimSpace(data)) == 0 {
		return fc, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&fc); err != nil {
		if isUnknownFieldError(err) {
			return FileConfig{}, fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
		}
		return FileConfig{}, fmt.Errorf("strict config parse error: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("config file contains trailing content")
	}
	return fc, nil
}

// isUnknownFieldError matches the strict-mode messages of yaml.v3
// ("field x not found in type ...") and encoding/json ("unknown field").
func isUnknownFieldError(err error) bool {
	msg := err.Error()
	return (strings.Contains(msg, "field") && strings.Contains(msg, "not found")) ||
		strings.Contains(msg, "unknown field")
}

// Parse decodes and defines a configuration in one step.
func Parse(data []byte, format Format) (*Descriptor, error) {
	fc, err := Unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	return Define(fc)
}

// Marshal encodes the descriptor in file form.
func Marshal(d *Descriptor, format Format) ([]byte, error) {
	return MarshalFileConfig(d.FileConfig(), format)
}

// MarshalFileConfig encodes a file config: YAML with two-space indent or
// indented JSON.
func MarshalFileConfig(fc FileConfig, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fc); err != nil {
			return nil, fmt.Errorf("encode config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("close encoder: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		out, err := json.MarshalIndent(fc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode config: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %q", format)
	}
}
