// SPDX-License-Identifier: MIT

package config

import (
	"net/url"
	"path"
	"strings"

	"github.com/ishanbagchi/sitecfg/internal/integration"
)

// DefaultBase is reported when a configuration sets no base path.
const DefaultBase = "/"

// Highlighting is the resolved markdown syntax-highlighting selection.
type Highlighting struct {
	Highlighter Highlighter
	LightTheme  string
	DarkTheme   string
	// Dual is set when separate light and dark themes were configured.
	Dual bool
	// UseDefaultColorFallback is false when defaultColor was disabled; colors
	// then come from the theme pair alone.
	UseDefaultColorFallback bool
	// DefaultColor is the theme key injected as default colors. Empty for a
	// single theme or when the fallback is disabled.
	DefaultColor  string
	WrapLongLines bool
}

// Descriptor is the validated, normalized, immutable build configuration.
// It is safe for concurrent use.
type Descriptor struct {
	site         string
	base         string
	highlighting Highlighting
	integrations []integration.Activation
	source       FileConfig
}

// Site returns the canonical site URL exactly as configured.
func (d *Descriptor) Site() string { return d.site }

// SiteURL returns a parsed copy of the site URL.
func (d *Descriptor) SiteURL() *url.URL {
	u, err := url.Parse(d.site)
	if err != nil {
		// Define only accepts parseable URLs.
		return &url.URL{}
	}
	return u
}

// Base returns the normalized base path, or DefaultBase when none was set.
func (d *Descriptor) Base() string {
	if d.base == "" {
		return DefaultBase
	}
	return d.base
}

// HasBase reports whether the configuration set a base path.
func (d *Descriptor) HasBase() bool { return d.base != "" }

// Highlighting returns the resolved highlighting selection.
func (d *Descriptor) Highlighting() Highlighting { return d.highlighting }

// Integrations returns a copy of the plugin activations in configured order.
func (d *Descriptor) Integrations() []integration.Activation {
	if len(d.integrations) == 0 {
		return nil
	}
	out := make([]integration.Activation, len(d.integrations))
	for i, a := range d.integrations {
		out[i] = a.Clone()
	}
	return out
}

// IntegrationNames returns the activation names in configured order.
func (d *Descriptor) IntegrationNames() []string {
	out := make([]string, len(d.integrations))
	for i, a := range d.integrations {
		out[i] = a.Name
	}
	return out
}

// URL resolves a site-relative page path against the site URL and base path.
func (d *Descriptor) URL(page string) string {
	u := d.SiteURL()
	joined := path.Join("/", u.Path, d.Base(), page)
	if strings.HasSuffix(page, "/") && joined != "/" {
		joined += "/"
	}
	u.Path = joined
	u.RawPath = ""
	return u.String()
}

// FileConfig returns the normalized configuration in file form. Options
// that were absent from the input stay absent.
func (d *Descriptor) FileConfig() FileConfig { return d.source.Clone() }

// Equal reports whether two descriptors describe the same build configuration.
func (d *Descriptor) Equal(o *Descriptor) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.site != o.site || d.base != o.base || d.highlighting != o.highlighting {
		return false
	}
	if len(d.integrations) != len(o.integrations) {
		return false
	}
	for i := range d.integrations {
		if !d.integrations[i].Equal(o.integrations[i]) {
			return false
		}
	}
	return true
}
