// SPDX-License-Identifier: MIT

// Package theme is the registry of syntax-highlighting color schemes known to
// the highlighting engine. Only names are tracked here; no theme is ever loaded.
package theme

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind tells whether a theme is designed for a light or a dark background.
type Kind string

const (
	KindLight Kind = "light"
	KindDark  Kind = "dark"
)

// Default is the theme used when a configuration selects none.
const Default = "github-dark"

// Theme describes one bundled color scheme.
type Theme struct {
	Name        string
	DisplayName string
	Kind        Kind
}

var lightThemes = []string{
	"catppuccin-latte",
	"everforest-light",
	"github-light",
	"github-light-default",
	"github-light-high-contrast",
	"gruvbox-light-hard",
	"gruvbox-light-medium",
	"gruvbox-light-soft",
	"kanagawa-lotus",
	"light-plus",
	"material-theme-lighter",
	"min-light",
	"one-light",
	"rose-pine-dawn",
	"slack-ochin",
	"snazzy-light",
	"solarized-light",
	"vitesse-light",
}

var darkThemes = []string{
	"andromeeda",
	"aurora-x",
	"ayu-dark",
	"catppuccin-frappe",
	"catppuccin-macchiato",
	"catppuccin-mocha",
	"dark-plus",
	"dracula",
	"dracula-soft",
	"everforest-dark",
	"github-dark",
	"github-dark-default",
	"github-dark-dimmed",
	"github-dark-high-contrast",
	"gruvbox-dark-hard",
	"gruvbox-dark-medium",
	"gruvbox-dark-soft",
	"houston",
	"kanagawa-dragon",
	"kanagawa-wave",
	"laserwave",
	"material-theme",
	"material-theme-darker",
	"material-theme-ocean",
	"material-theme-palenight",
	"min-dark",
	"monokai",
	"night-owl",
	"nord",
	"one-dark-pro",
	"plastic",
	"poimandres",
	"red",
	"rose-pine",
	"rose-pine-moon",
	"slack-dark",
	"solarized-dark",
	"synthwave-84",
	"tokyo-night",
	"vesper",
	"vitesse-black",
	"vitesse-dark",
}

var (
	registryOnce sync.Once
	byName       map[string]Theme
	sorted       []Theme
)

func load() {
	registryOnce.Do(func() {
		caser := cases.Title(language.English)
		byName = make(map[string]Theme, len(lightThemes)+len(darkThemes))

		add := func(name string, kind Kind) {
			byName[name] = Theme{
				Name:        name,
				DisplayName: caser.String(strings.ReplaceAll(name, "-", " ")),
				Kind:        kind,
			}
		}
		for _, name := range lightThemes {
			add(name, KindLight)
		}
		for _, name := range darkThemes {
			add(name, KindDark)
		}

		sorted = make([]Theme, 0, len(byName))
		for _, th := range byName {
			sorted = append(sorted, th)
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	})
}

// Lookup returns the theme registered under name.
func Lookup(name string) (Theme, bool) {
	load()
	th, ok := byName[name]
	return th, ok
}

// Known reports whether name is a registered theme identifier.
func Known(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// All returns every registered theme sorted by name.
func All() []Theme {
	load()
	out := make([]Theme, len(sorted))
	copy(out, sorted)
	return out
}
