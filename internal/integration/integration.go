// SPDX-License-Identifier: MIT

// Package integration describes plugin activation entries and the registry of
// integrations a site build may enable.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Names of the integrations the bundled site configurations use.
const (
	NameMDX  = "mdx"
	NameIcon = "icon"
)

// Info describes a registered integration.
type Info struct {
	Name        string
	Package     string
	Description string
}

var registry = map[string]Info{
	NameMDX:     {Name: NameMDX, Package: "@astrojs/mdx", Description: "embedded-component markdown documents"},
	NameIcon:    {Name: NameIcon, Package: "astro-icon", Description: "icon rendering"},
	"sitemap":   {Name: "sitemap", Package: "@astrojs/sitemap", Description: "sitemap generation"},
	"tailwind":  {Name: "tailwind", Package: "@astrojs/tailwind", Description: "utility-first CSS"},
	"react":     {Name: "react", Package: "@astrojs/react", Description: "React component islands"},
	"partytown": {Name: "partytown", Package: "@astrojs/partytown", Description: "third-party scripts in a web worker"},
}

// Lookup returns the registered integration with the given name.
func Lookup(name string) (Info, bool) {
	s, ok := registry[name]
	return s, ok
}

// Known reports whether name is a registered integration.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// All returns every registered integration sorted by name.
func All() []Info {
	out := make([]Info, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Activation enables one integration for a build.
type Activation struct {
	Name    string
	Options map[string]any
}

// New returns an activation for name with a private copy of options.
func New(name string, options map[string]any) Activation {
	return Activation{Name: name, Options: cloneMap(options)}
}

// MDX activates embedded-component markdown documents.
func MDX() Activation { return New(NameMDX, nil) }

// Icon activates icon rendering.
func Icon() Activation { return New(NameIcon, nil) }

// Clone returns a deep copy of the activation.
func (a Activation) Clone() Activation {
	return New(a.Name, a.Options)
}

// Equal reports whether two activations have the same name and options.
func (a Activation) Equal(b Activation) bool {
	if a.Name != b.Name || len(a.Options) != len(b.Options) {
		return false
	}
	if len(a.Options) == 0 {
		return true
	}
	return reflect.DeepEqual(a.Options, b.Options)
}

func (a Activation) String() string {
	if len(a.Options) == 0 {
		return a.Name + "()"
	}
	keys := make([]string, 0, len(a.Options))
	for k := range a.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return a.Name + "({" + strings.Join(keys, ", ") + "})"
}

type activationDoc struct {
	Name    string         `yaml:"name" json:"name"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// UnmarshalYAML accepts either a bare name ("mdx") or a mapping with name and options.
func (a *Activation) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}
		*a = Activation{Name: strings.TrimSpace(name)}
		return nil
	case yaml.MappingNode:
		var doc activationDoc
		if err := decodeStrict(value, &doc); err != nil {
			return err
		}
		*a = Activation{Name: strings.TrimSpace(doc.Name), Options: doc.Options}
		return nil
	default:
		return fmt.Errorf("line %d: integration must be a name or a mapping with name and options", value.Line)
	}
}

// decodeStrict rejects mapping keys other than name and options.
func decodeStrict(value *yaml.Node, doc *activationDoc) error {
	for i := 0; i+1 < len(value.Content); i += 2 {
		switch key := value.Content[i].Value; key {
		case "name", "options":
		default:
			return fmt.Errorf("line %d: field %s not found in integration", value.Content[i].Line, key)
		}
	}
	return value.Decode(doc)
}

// MarshalYAML writes a bare name when there are no options.
func (a Activation) MarshalYAML() (any, error) {
	if len(a.Options) == 0 {
		return a.Name, nil
	}
	return activationDoc{Name: a.Name, Options: a.Options}, nil
}

// UnmarshalJSON mirrors UnmarshalYAML.
func (a *Activation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*a = Activation{Name: strings.TrimSpace(name)}
		return nil
	}
	if len(data) == 0 || data[0] != '{' {
		return fmt.Errorf("integration must be a name or an object with name and options")
	}
	var doc activationDoc
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	*a = Activation{Name: strings.TrimSpace(doc.Name), Options: doc.Options}
	return nil
}

// MarshalJSON mirrors MarshalYAML.
func (a Activation) MarshalJSON() ([]byte, error) {
	if len(a.Options) == 0 {
		return json.Marshal(a.Name)
	}
	return json.Marshal(activationDoc{Name: a.Name, Options: a.Options})
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case map[string]string:
		return maps.Clone(t)
	default:
		return v
	}
}
