// SPDX-License-Identifier: MIT

package config

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Change is one key whose effective value differs between two descriptors.
type Change struct {
	Key string
	Old any
	New any
}

// ChangeSummary describes the difference between two descriptors.
type ChangeSummary struct {
	Changes       []Change
	ChangedFields []string
	// RebuildRequired is set when any change affects emitted pages. Every
	// key feeds the build output, so it is set for any change.
	RebuildRequired bool
}

// Empty reports whether nothing changed.
func (s ChangeSummary) Empty() bool { return len(s.Changes) == 0 }

// Diff compares two descriptors key by key in registry order. A nil old
// descriptor reports every key that next sets.
func Diff(old, next *Descriptor) ChangeSummary {
	ov, nv := keyValues(old), keyValues(next)

	var s ChangeSummary
	for _, e := range keyRegistry {
		a, b := ov[e.Path], nv[e.Path]
		if cmp.Equal(a, b, cmpopts.EquateEmpty()) {
			continue
		}
		s.Changes = append(s.Changes, Change{Key: e.Path, Old: a, New: b})
		s.ChangedFields = append(s.ChangedFields, e.Path)
	}
	s.RebuildRequired = len(s.Changes) > 0
	return s
}

// keyValues maps registry keys to the descriptor's effective values. Keys
// that do not apply to the descriptor's form are left out.
func keyValues(d *Descriptor) map[string]any {
	m := make(map[string]any, len(keyRegistry))
	if d == nil {
		return m
	}
	h := d.highlighting
	m[KeySite] = d.site
	m[KeyBase] = d.Base()
	m[KeySyntaxHighlight] = string(h.Highlighter)
	if h.Dual {
		m[KeyThemesLight] = h.LightTheme
		m[KeyThemesDark] = h.DarkTheme
		if h.UseDefaultColorFallback {
			m[KeyDefaultColor] = h.DefaultColor
		} else {
			m[KeyDefaultColor] = false
		}
	} else {
		m[KeyTheme] = h.LightTheme
	}
	m[KeyWrap] = h.WrapLongLines

	// Activation.Equal drives the comparison of option maps.
	if len(d.integrations) > 0 {
		m[KeyIntegrations] = d.Integrations()
	}
	return m
}
