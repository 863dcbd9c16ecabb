// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/ishanbagchi/sitecfg/internal/integration"
	"github.com/ishanbagchi/sitecfg/internal/theme"
	"github.com/ishanbagchi/sitecfg/internal/validate"
)

var (
	allowedSiteSchemes = []string{"http", "https"}
	allowedHighlighter = []string{string(HighlighterShiki), string(HighlighterPrism), string(HighlighterNone)}
	allowedColorKeys   = []string{ColorKeyLight, ColorKeyDark}
)

// Define validates and normalizes a configuration and returns its immutable
// descriptor. All field problems are reported together in one
// *ConfigurationError. Define performs no I/O.
func Define(fc FileConfig) (*Descriptor, error) {
	fc = fc.Clone()
	v := validate.New()

	site := strings.TrimSpace(fc.Site)
	if v.Required(KeySite, site) {
		v.URL(KeySite, site, allowedSiteSchemes)
	}

	base := strings.TrimSpace(fc.Base)
	if base != "" {
		v.URLPath(KeyBase, base)
		base = normalizeBase(base)
	}

	trimMarkdown(fc.Markdown)
	hl := resolveHighlighting(v, fc.Markdown)
	acts := resolveIntegrations(v, fc.Integrations)

	if !v.IsValid() {
		return nil, &ConfigurationError{Err: v.Err()}
	}

	fc.Site = site
	fc.Base = base
	fc.Integrations = acts

	return &Descriptor{
		site:         site,
		base:         base,
		highlighting: hl,
		integrations: acts,
		source:       fc,
	}, nil
}

// normalizeBase collapses repeated slashes and drops a trailing slash,
// keeping "/" for the root.
func normalizeBase(base string) string {
	var b strings.Builder
	b.Grow(len(base))
	prevSlash := false
	for _, r := range base {
		if r == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if len(out) > 1 {
		out = strings.TrimSuffix(out, "/")
	}
	return out
}

// trimMarkdown strips surrounding whitespace from the markdown string
// values in place so the stored source matches what was resolved.
func trimMarkdown(md *MarkdownConfig) {
	if md == nil {
		return
	}
	if md.SyntaxHighlight != nil {
		hl := Highlighter(strings.TrimSpace(string(*md.SyntaxHighlight)))
		md.SyntaxHighlight = &hl
	}
	sc := md.ShikiConfig
	if sc == nil {
		return
	}
	sc.Theme = strings.TrimSpace(sc.Theme)
	if sc.Themes != nil {
		sc.Themes.Light = strings.TrimSpace(sc.Themes.Light)
		sc.Themes.Dark = strings.TrimSpace(sc.Themes.Dark)
	}
	if sc.DefaultColor != nil && !sc.DefaultColor.Disabled {
		sc.DefaultColor.Key = strings.TrimSpace(sc.DefaultColor.Key)
	}
}

func resolveHighlighting(v *validate.Validator, md *MarkdownConfig) Highlighting {
	h := Highlighting{
		Highlighter:             DefaultHighlighter,
		UseDefaultColorFallback: true,
	}

	var sc *ShikiConfig
	if md != nil {
		if md.SyntaxHighlight != nil {
			h.Highlighter = *md.SyntaxHighlight
		}
		sc = md.ShikiConfig
	}
	v.OneOf(KeySyntaxHighlight, string(h.Highlighter), allowedHighlighter)
	if sc == nil {
		sc = &ShikiConfig{}
	}

	// Theme names only need to resolve when shiki renders the code blocks.
	checkTheme := func(field, name string) {
		if name != "" && h.Highlighter == HighlighterShiki {
			v.Known(field, "theme", name, theme.Known)
		}
	}

	switch {
	case sc.Theme != "" && sc.Themes != nil:
		v.AddError(KeyTheme, "theme and themes are mutually exclusive", sc.Theme)
	case sc.Themes != nil:
		h.Dual = true
		h.LightTheme = sc.Themes.Light
		h.DarkTheme = sc.Themes.Dark
		h.DefaultColor = ColorKeyLight
		v.NotEmpty(KeyThemesLight, h.LightTheme)
		v.NotEmpty(KeyThemesDark, h.DarkTheme)
		checkTheme(KeyThemesLight, h.LightTheme)
		checkTheme(KeyThemesDark, h.DarkTheme)
	default:
		name := sc.Theme
		if name == "" {
			name = theme.Default
		}
		h.LightTheme, h.DarkTheme = name, name
		checkTheme(KeyTheme, name)
	}

	if dc := sc.DefaultColor; dc != nil {
		switch {
		case !h.Dual:
			v.AddError(KeyDefaultColor, "requires themes (light and dark)", dc.Key)
		case dc.Disabled:
			h.UseDefaultColorFallback = false
			h.DefaultColor = ""
		default:
			v.OneOf(KeyDefaultColor, dc.Key, allowedColorKeys)
			h.DefaultColor = dc.Key
		}
	}

	if sc.Wrap != nil {
		h.WrapLongLines = *sc.Wrap
	}
	return h
}

func resolveIntegrations(v *validate.Validator, in []integration.Activation) []integration.Activation {
	if len(in) == 0 {
		return nil
	}
	out := make([]integration.Activation, 0, len(in))
	seen := make(map[string]int, len(in))
	for i, a := range in {
		field := fmt.Sprintf("%s[%d]", KeyIntegrations, i)
		name := strings.TrimSpace(a.Name)
		v.Known(field, "integration", name, integration.Known)
		if first, dup := seen[name]; dup && name != "" {
			v.AddError(field, fmt.Sprintf("duplicate integration %q (first at %s[%d])", name, KeyIntegrations, first), name)
			continue
		}
		seen[name] = i

		opts := a.Options
		if len(opts) == 0 {
			opts = nil
		}
		out = append(out, integration.New(name, opts))
	}
	return out
}
