// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ishanbagchi/sitecfg/internal/integration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	inputs := map[string]FileConfig{
		"blog": {
			Site:     "https://ishanbagchi.com",
			Base:     "/blog",
			Markdown: siteMarkdown(),
		},
		"logs": {
			Site:     "https://logs.ishanbagchi.com",
			Markdown: siteMarkdown(),
		},
		"logs-mdx": {
			Site:         "https://logs.ishanbagchi.com",
			Markdown:     siteMarkdown(),
			Integrations: []integration.Activation{integration.MDX(), integration.Icon()},
		},
		"options and single theme": {
			Site: "https://example.com/",
			Base: "/docs//",
			Markdown: &MarkdownConfig{
				SyntaxHighlight: highlighterPtr(HighlighterShiki),
				ShikiConfig:     &ShikiConfig{Theme: "nord", Wrap: boolPtr(true)},
			},
			Integrations: []integration.Activation{
				integration.New("icon", map[string]any{"include": map[string]any{"mdi": []any{"*"}}}),
			},
		},
		"highlighting disabled": {
			Site:     "https://example.com",
			Markdown: &MarkdownConfig{SyntaxHighlight: highlighterPtr(HighlighterNone)},
		},
	}

	for name, fc := range inputs {
		for _, format := range []Format{FormatYAML, FormatJSON} {
			t.Run(name+"/"+string(format), func(t *testing.T) {
				d, err := Define(fc)
				require.NoError(t, err)

				data, err := Marshal(d, format)
				require.NoError(t, err)

				again, err := Parse(data, format)
				require.NoError(t, err, "re-parse:\n%s", data)

				assert.True(t, d.Equal(again), "descriptor changed after round trip:\n%s", data)
				if diff := cmp.Diff(d.FileConfig(), again.FileConfig(), cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("file form mismatch (-want +got):\n%s", diff)
				}

				// Marshal is stable once normalized.
				data2, err := Marshal(again, format)
				require.NoError(t, err)
				assert.Equal(t, string(data), string(data2))
			})
		}
	}
}

func TestMarshalYAML_SiteShape(t *testing.T) {
	d, err := Define(FileConfig{
		Site:         "https://logs.ishanbagchi.com",
		Markdown:     siteMarkdown(),
		Integrations: []integration.Activation{integration.MDX(), integration.Icon()},
	})
	require.NoError(t, err)

	data, err := Marshal(d, FormatYAML)
	require.NoError(t, err)

	want := `site: https://logs.ishanbagchi.com
markdown:
  shikiConfig:
    themes:
      light: catppuccin-latte
      dark: github-dark-dimmed
    defaultColor: false
    wrap: false
integrations:
  - mdx
  - icon
`
	assert.Equal(t, want, string(data))
}

func TestUnmarshal_UnknownField(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"yaml top level", "site: https://example.com\nsiteName: x\n", FormatYAML},
		{"yaml nested", "site: https://example.com\nmarkdown:\n  shikiConfig:\n    wrapp: true\n", FormatYAML},
		{"yaml integration", "site: https://example.com\nintegrations:\n  - name: mdx\n    opts: {}\n", FormatYAML},
		{"json top level", `{"site": "https://example.com", "siteName": "x"}`, FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.ErrorIs(t, err, ErrUnknownConfigField)
		})
	}
}

func TestUnmarshal_Strictness(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"multiple documents", "site: https://a.example\n---\nsite: https://b.example\n", FormatYAML},
		{"json trailing content", `{"site": "https://a.example"} {"site": "https://b.example"}`, FormatJSON},
		{"json trailing brace", `{"site": "https://a.example"} }`, FormatJSON},
		{"json trailing brackets", `{"site": "https://a.example"} ]]]`, FormatJSON},
		{"syntaxHighlight none yaml", "site: https://a.example\nmarkdown:\n  syntaxHighlight: none\n", FormatYAML},
		{"syntaxHighlight none json", `{"site": "https://a.example", "markdown": {"syntaxHighlight": "none"}}`, FormatJSON},
		{"syntaxHighlight true", "site: https://a.example\nmarkdown:\n  syntaxHighlight: true\n", FormatYAML},
		{"defaultColor true", "site: https://a.example\nmarkdown:\n  shikiConfig:\n    defaultColor: true\n", FormatYAML},
		{"wrong type", "site: [1, 2]\n", FormatYAML},
		{"unsupported format", "site: https://a.example\n", Format("toml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestUnmarshal_EmptyDocument(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		fc, err := Unmarshal([]byte("  \n"), format)
		require.NoError(t, err)
		assert.Equal(t, FileConfig{}, fc)

		_, err = Define(fc)
		ce := requireConfigError(t, err)
		assert.Equal(t, []string{KeySite}, ce.Fields())
	}
}

func TestUnmarshal_IntegrationForms(t *testing.T) {
	data := `site: https://example.com
integrations:
  - mdx
  - name: icon
    options:
      include:
        mdi: ["*"]
`
	fc, err := Unmarshal([]byte(data), FormatYAML)
	require.NoError(t, err)

	want := []integration.Activation{
		{Name: "mdx"},
		{Name: "icon", Options: map[string]any{"include": map[string]any{"mdi": []any{"*"}}}},
	}
	if diff := cmp.Diff(want, fc.Integrations); diff != "" {
		t.Errorf("integrations mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSONFixture(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "valid.json"))
	require.NoError(t, err)

	d, err := Parse(data, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", d.Site())
	assert.Equal(t, "/docs", d.Base())
	h := d.Highlighting()
	assert.Equal(t, "github-light", h.LightTheme)
	assert.Equal(t, ColorKeyDark, h.DefaultColor)
	assert.True(t, h.WrapLongLines)
	assert.Equal(t, []string{"mdx", "icon"}, d.IntegrationNames())
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"a.yaml":      FormatYAML,
		"dir/b.YML":   FormatYAML,
		"site.json":   FormatJSON,
		"config.toml": "",
		"noext":       "",
	}
	for path, want := range tests {
		got, err := FormatForPath(path)
		if want == "" {
			assert.Error(t, err, path)
			continue
		}
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	f, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
