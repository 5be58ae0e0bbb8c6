package question

import "sort"

// Schema is the JSON-Schema-shaped parameter schema a question may declare.
// Fields bound to externally-hosted terminology carry an x-canonical-url
// annotation pointing at the canonical resource.
type Schema struct {
	Type         string             `yaml:"type,omitempty" json:"type,omitempty"`
	Description  string             `yaml:"description,omitempty" json:"description,omitempty"`
	Properties   map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	Items        *Schema            `yaml:"items,omitempty" json:"items,omitempty"`
	Enum         []string           `yaml:"enum,omitempty" json:"enum,omitempty"`
	Required     []string           `yaml:"required,omitempty" json:"required,omitempty"`
	CanonicalURL string             `yaml:"x-canonical-url,omitempty" json:"x-canonical-url,omitempty"`
}

// SortedPropertyNames returns the property names in deterministic order.
func (s *Schema) SortedPropertyNames() []string {
	if s == nil || len(s.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Property looks up a top-level property schema.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s == nil || s.Properties == nil {
		return nil, false
	}
	p, ok := s.Properties[name]
	return p, ok
}
