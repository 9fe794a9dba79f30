package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScriptBinding declares one Lua-backed pipeline process.
type ScriptBinding struct {
	Name     string            `yaml:"name"`
	Phase    string            `yaml:"phase"`    // system phase name, e.g. "update"
	Update   string            `yaml:"update"`   // Lua function run every tick ("" = none)
	Handlers map[string]string `yaml:"handlers"` // injected kind → Lua function
}

// BindingTable holds script bindings in file order.
type BindingTable struct {
	bindings []ScriptBinding
	byName   map[string]*ScriptBinding
}

// LoadBindingTable loads script_bindings.yaml.
func LoadBindingTable(path string) (*BindingTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script bindings: %w", err)
	}
	return ParseBindingTable(raw)
}

// ParseBindingTable decodes a binding list. Names must be unique.
func ParseBindingTable(raw []byte) (*BindingTable, error) {
	var entries []ScriptBinding
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse script bindings: %w", err)
	}
	t := &BindingTable{
		bindings: entries,
		byName:   make(map[string]*ScriptBinding, len(entries)),
	}
	for i := range t.bindings {
		b := &t.bindings[i]
		if b.Name == "" {
			return nil, fmt.Errorf("script binding %d has no name", i)
		}
		if _, dup := t.byName[b.Name]; dup {
			return nil, fmt.Errorf("duplicate script binding %q", b.Name)
		}
		t.byName[b.Name] = b
	}
	return t, nil
}

// Get returns a binding by name, or nil if not found.
func (t *BindingTable) Get(name string) *ScriptBinding {
	return t.byName[name]
}

// All returns the bindings in file order.
func (t *BindingTable) All() []ScriptBinding {
	return t.bindings
}

// Count returns total loaded bindings.
func (t *BindingTable) Count() int {
	return len(t.bindings)
}
