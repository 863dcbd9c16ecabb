// SPDX-License-Identifier: MIT

package config

import "github.com/ishanbagchi/sitecfg/internal/theme"

// User-facing configuration keys.
const (
	KeySite            = "site"
	KeyBase            = "base"
	KeySyntaxHighlight = "markdown.syntaxHighlight"
	KeyTheme           = "markdown.shikiConfig.theme"
	KeyThemesLight     = "markdown.shikiConfig.themes.light"
	KeyThemesDark      = "markdown.shikiConfig.themes.dark"
	KeyDefaultColor    = "markdown.shikiConfig.defaultColor"
	KeyWrap            = "markdown.shikiConfig.wrap"
	KeyIntegrations    = "integrations"
)

// KeyEntry defines a single configuration key's metadata.
type KeyEntry struct {
	Path        string // User-facing path (e.g. "markdown.shikiConfig.wrap")
	FieldPath   string // Descriptor accessor path (e.g. "Highlighting.WrapLongLines")
	Required    bool
	Default     any
	Description string
}

var keyRegistry = []KeyEntry{
	{Path: KeySite, FieldPath: "Site", Required: true, Description: "absolute canonical URL of the deployed site"},
	{Path: KeyBase, FieldPath: "Base", Default: "/", Description: "URL path prefix under which the site is served"},
	{Path: KeySyntaxHighlight, FieldPath: "Highlighting.Highlighter", Default: string(DefaultHighlighter), Description: "syntax highlighter: shiki, prism or false"},
	{Path: KeyTheme, FieldPath: "Highlighting.LightTheme", Default: theme.Default, Description: "single theme for both color modes"},
	{Path: KeyThemesLight, FieldPath: "Highlighting.LightTheme", Description: "theme for light mode"},
	{Path: KeyThemesDark, FieldPath: "Highlighting.DarkTheme", Description: "theme for dark mode"},
	{Path: KeyDefaultColor, FieldPath: "Highlighting.DefaultColor", Default: ColorKeyLight, Description: "theme key injected as default colors, or false to defer to the theme pair"},
	{Path: KeyWrap, FieldPath: "Highlighting.WrapLongLines", Default: false, Description: "wrap long code lines instead of scrolling"},
	{Path: KeyIntegrations, FieldPath: "Integrations", Description: "ordered plugin activations"},
}

var keyIndex = func() map[string]KeyEntry {
	m := make(map[string]KeyEntry, len(keyRegistry))
	for _, e := range keyRegistry {
		m[e.Path] = e
	}
	return m
}()

// Keys returns the configuration key inventory in declaration order.
func Keys() []KeyEntry {
	out := make([]KeyEntry, len(keyRegistry))
	copy(out, keyRegistry)
	return out
}

// LookupKey returns the registry entry for a user-facing path.
func LookupKey(path string) (KeyEntry, bool) {
	e, ok := keyIndex[path]
	return e, ok
}
