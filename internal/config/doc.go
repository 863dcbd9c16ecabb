// SPDX-License-Identifier: MIT

// Package config loads, validates and holds site build configurations.
//
// A configuration file is decoded strictly into a FileConfig and handed to
// Define, which normalizes it and returns an immutable Descriptor. Every
// failure is a *ConfigurationError; errors.Is(err, ErrConfiguration) holds
// for all of them.
package config
