// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	xlog "github.com/ishanbagchi/sitecfg/internal/log"
	"github.com/ishanbagchi/sitecfg/internal/metrics"
	"github.com/rs/zerolog"
)

// Overrides are applied after the file is decoded and before validation.
// Empty fields leave the file value untouched.
type Overrides struct {
	Site string
	Base string
}

func (o Overrides) apply(fc *FileConfig) {
	if s := strings.TrimSpace(o.Site); s != "" {
		fc.Site = s
	}
	if b := strings.TrimSpace(o.Base); b != "" {
		fc.Base = b
	}
}

// Loader reads a configuration file with precedence: file -> overrides.
type Loader struct {
	path      string
	overrides Overrides
	logger    zerolog.Logger
}

// NewLoader creates a loader for the given YAML or JSON file.
func NewLoader(path string) *Loader {
	return &Loader{
		path:   path,
		logger: xlog.WithComponent("config"),
	}
}

// WithOverrides returns a copy of the loader that applies o on every Load.
func (l *Loader) WithOverrides(o Overrides) *Loader {
	cp := *l
	cp.overrides = o
	return &cp
}

// Path returns the file the loader reads.
func (l *Loader) Path() string { return l.path }

// Load reads, decodes and validates the configuration file.
// Every failure is a *ConfigurationError carrying the file path.
func (l *Loader) Load() (*Descriptor, error) {
	start := time.Now()

	d, err := l.load()
	took := time.Since(start)
	if err != nil {
		result := metrics.ResultError
		var ce *ConfigurationError
		if errors.As(err, &ce) {
			if fields := ce.Fields(); len(fields) > 0 {
				result = metrics.ResultInvalid
				metrics.RecordValidationErrors(fields)
			}
		}
		metrics.RecordLoad(result, took)
		l.logger.Error().
			Err(err).
			Str(xlog.FieldEvent, "config.load_failed").
			Str(xlog.FieldPath, l.path).
			Msg("failed to load configuration")
		return nil, err
	}

	metrics.RecordLoad(metrics.ResultSuccess, took)
	l.logger.Info().
		Str(xlog.FieldEvent, "config.load_success").
		Str(xlog.FieldPath, l.path).
		Str(xlog.FieldSite, d.Site()).
		Str(xlog.FieldBase, d.Base()).
		Strs(xlog.FieldIntegrations, d.IntegrationNames()).
		Int64(xlog.FieldDurationMS, took.Milliseconds()).
		Msg("configuration loaded")
	return d, nil
}

func (l *Loader) load() (*Descriptor, error) {
	fc, err := LoadFileConfig(l.path)
	if err != nil {
		return nil, err
	}
	l.overrides.apply(&fc)

	d, err := Define(fc)
	if err != nil {
		return nil, withPath(err, l.path)
	}
	return d, nil
}

// LoadFileConfig reads and strictly decodes a file without validating it.
func LoadFileConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, &ConfigurationError{Err: errors.New("no config file given")}
	}
	format, err := FormatForPath(path)
	if err != nil {
		return FileConfig{}, &ConfigurationError{Path: path, Err: err}
	}

	// #nosec G304 -- path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, &ConfigurationError{Path: path, Err: fmt.Errorf("read file: %w", err)}
	}

	fc, err := Unmarshal(data, format)
	if err != nil {
		return FileConfig{}, withPath(err, path)
	}
	return fc, nil
}
