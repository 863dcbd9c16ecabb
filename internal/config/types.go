// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ishanbagchi/sitecfg/internal/integration"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of a site build configuration.
type FileConfig struct {
	Base         string                   `yaml:"base,omitempty" json:"base,omitempty"`
	Site         string                   `yaml:"site" json:"site"`
	Markdown     *MarkdownConfig          `yaml:"markdown,omitempty" json:"markdown,omitempty"`
	Integrations []integration.Activation `yaml:"integrations,omitempty" json:"integrations,omitempty"`
}

// MarkdownConfig holds the markdown options relevant to code blocks.
type MarkdownConfig struct {
	SyntaxHighlight *Highlighter `yaml:"syntaxHighlight,omitempty" json:"syntaxHighlight,omitempty"`
	ShikiConfig     *ShikiConfig `yaml:"shikiConfig,omitempty" json:"shikiConfig,omitempty"`
}

// ShikiConfig selects the highlighting themes.
// Theme and Themes are mutually exclusive.
type ShikiConfig struct {
	Theme        string        `yaml:"theme,omitempty" json:"theme,omitempty"`
	Themes       *ThemePair    `yaml:"themes,omitempty" json:"themes,omitempty"`
	DefaultColor *DefaultColor `yaml:"defaultColor,omitempty" json:"defaultColor,omitempty"`
	Wrap         *bool         `yaml:"wrap,omitempty" json:"wrap,omitempty"`
}

// ThemePair names the light and dark mode themes.
type ThemePair struct {
	Light string `yaml:"light" json:"light"`
	Dark  string `yaml:"dark" json:"dark"`
}

// Highlighter selects the syntax highlighter. In files it is "shiki",
// "prism" or the boolean false.
type Highlighter string

const (
	HighlighterShiki Highlighter = "shiki"
	HighlighterPrism Highlighter = "prism"
	// HighlighterNone disables highlighting. Files spell it false; the
	// string "none" is rejected on decode.
	HighlighterNone Highlighter = "none"
)

// DefaultHighlighter is used when markdown.syntaxHighlight is absent.
const DefaultHighlighter = HighlighterShiki

func (h *Highlighter) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: syntaxHighlight must be \"shiki\", \"prism\" or false", value.Line)
	}
	if value.ShortTag() == "!!bool" {
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		if b {
			return fmt.Errorf("line %d: syntaxHighlight may only be false, not true", value.Line)
		}
		*h = HighlighterNone
		return nil
	}
	return h.setString(value.Value)
}

func (h Highlighter) MarshalYAML() (any, error) {
	if h == HighlighterNone {
		return false, nil
	}
	return string(h), nil
}

func (h *Highlighter) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "false":
		*h = HighlighterNone
		return nil
	case "true":
		return fmt.Errorf("syntaxHighlight may only be false, not true")
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("syntaxHighlight must be \"shiki\", \"prism\" or false")
	}
	return h.setString(s)
}

func (h *Highlighter) setString(s string) error {
	if Highlighter(strings.TrimSpace(s)) == HighlighterNone {
		return fmt.Errorf("syntaxHighlight must be \"shiki\", \"prism\" or false, not %q", s)
	}
	*h = Highlighter(s)
	return nil
}

func (h Highlighter) MarshalJSON() ([]byte, error) {
	v, _ := h.MarshalYAML()
	return json.Marshal(v)
}

// DefaultColor is either disabled (false in files), which defers color
// selection entirely to the theme pair, or the key of the theme whose colors
// are injected as defaults.
type DefaultColor struct {
	Disabled bool
	Key      string
}

// Default color keys.
const (
	ColorKeyLight = "light"
	ColorKeyDark  = "dark"
)

func (c *DefaultColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: defaultColor must be false or a theme key", value.Line)
	}
	if value.ShortTag() == "!!bool" {
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		if b {
			return fmt.Errorf("line %d: defaultColor may only be false, not true", value.Line)
		}
		*c = DefaultColor{Disabled: true}
		return nil
	}
	*c = DefaultColor{Key: value.Value}
	return nil
}

func (c DefaultColor) MarshalYAML() (any, error) {
	if c.Disabled {
		return false, nil
	}
	return c.Key, nil
}

func (c *DefaultColor) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "false":
		*c = DefaultColor{Disabled: true}
		return nil
	case "true":
		return fmt.Errorf("defaultColor may only be false, not true")
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("defaultColor must be false or a theme key")
	}
	*c = DefaultColor{Key: s}
	return nil
}

func (c DefaultColor) MarshalJSON() ([]byte, error) {
	v, _ := c.MarshalYAML()
	return json.Marshal(v)
}

// Clone returns a deep copy of the file config.
func (fc FileConfig) Clone() FileConfig {
	out := FileConfig{Base: fc.Base, Site: fc.Site}
	if fc.Markdown != nil {
		md := MarkdownConfig{}
		if fc.Markdown.SyntaxHighlight != nil {
			h := *fc.Markdown.SyntaxHighlight
			md.SyntaxHighlight = &h
		}
		if sc := fc.Markdown.ShikiConfig; sc != nil {
			c := ShikiConfig{Theme: sc.Theme}
			if sc.Themes != nil {
				p := *sc.Themes
				c.Themes = &p
			}
			if sc.DefaultColor != nil {
				d := *sc.DefaultColor
				c.DefaultColor = &d
			}
			if sc.Wrap != nil {
				w := *sc.Wrap
				c.Wrap = &w
			}
			md.ShikiConfig = &c
		}
		out.Markdown = &md
	}
	if fc.Integrations != nil {
		out.Integrations = make([]integration.Activation, len(fc.Integrations))
		for i, a := range fc.Integrations {
			out.Integrations[i] = a.Clone()
		}
	}
	return out
}
