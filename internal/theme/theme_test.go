// SPDX-License-Identifier: MIT

package theme

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		wantOK   bool
		wantKind Kind
	}{
		{"catppuccin-latte", true, KindLight},
		{"github-dark-dimmed", true, KindDark},
		{"github-dark", true, KindDark},
		{"one-light", true, KindLight},
		{"GitHub-Dark", false, ""},
		{"catppuccin-espresso", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, ok := Lookup(tt.name)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.name, th.Name)
				assert.Equal(t, tt.wantKind, th.Kind)
			}
			assert.Equal(t, tt.wantOK, Known(tt.name))
		})
	}
}

func TestDefaultIsKnown(t *testing.T) {
	assert.True(t, Known(Default))
}

func TestDisplayName(t *testing.T) {
	th, ok := Lookup("github-dark-dimmed")
	require.True(t, ok)
	assert.Equal(t, "Github Dark Dimmed", th.DisplayName)

	th, ok = Lookup("synthwave-84")
	require.True(t, ok)
	assert.Equal(t, "Synthwave 84", th.DisplayName)
}

func TestAll_SortedAndCopied(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	assert.True(t, sort.SliceIsSorted(all, func(i, j int) bool { return all[i].Name < all[j].Name }))

	seen := map[string]bool{}
	for _, th := range all {
		assert.False(t, seen[th.Name], "duplicate theme %s", th.Name)
		seen[th.Name] = true
	}

	all[0].Name = "mutated"
	assert.NotEqual(t, "mutated", All()[0].Name)
}

func TestThemeTables_SortedAndDisjoint(t *testing.T) {
	for kind, names := range map[Kind][]string{KindLight: lightThemes, KindDark: darkThemes} {
		assert.True(t, sort.StringsAreSorted(names), "%s themes not sorted", kind)
		for _, name := range names {
			th, ok := Lookup(name)
			require.True(t, ok, name)
			assert.Equal(t, kind, th.Kind, name)
		}
	}
	assert.Len(t, All(), len(lightThemes)+len(darkThemes))
}
