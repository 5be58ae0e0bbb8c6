// Package question defines the question-module contract for the DAK FAQ
// engine: the machine-readable Definition artifact, the Executor interface,
// the execution input/result types, and the Registry that owns all loaded
// modules for the process lifetime.
package question

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level is the namespace a question belongs to.
type Level string

const (
	LevelDAK       Level = "dak"
	LevelComponent Level = "component"
	LevelAsset     Level = "asset"
)

// Parameter describes one input parameter a question accepts.
type Parameter struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Required    bool   `yaml:"required" json:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Definition is the metadata half of a question module. It is parsed from the
// module's YAML artifact and immutable once loaded.
type Definition struct {
	ID            string      `yaml:"id" json:"id"`
	Level         Level       `yaml:"level" json:"level"`
	Title         string      `yaml:"title" json:"title"`
	Description   string      `yaml:"description" json:"description"`
	Parameters    []Parameter `yaml:"parameters" json:"parameters"`
	Tags          []string    `yaml:"tags" json:"tags"`
	Schema        *Schema     `yaml:"schema,omitempty" json:"schema,omitempty"`
	ComponentType string      `yaml:"componentType,omitempty" json:"componentType,omitempty"`
	AssetType     string      `yaml:"assetType,omitempty" json:"assetType,omitempty"`
}

var parameterTypes = map[string]struct{}{
	"string":  {},
	"number":  {},
	"integer": {},
	"boolean": {},
	"array":   {},
	"object":  {},
}

// ParseDefinition decodes and validates a YAML definition artifact.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("decode definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Validate checks the required definition fields. A failing definition is
// never admitted to the catalog.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("id is required")
	}
	switch d.Level {
	case LevelDAK, LevelComponent, LevelAsset:
	case "":
		return fmt.Errorf("question %s: level is required", d.ID)
	default:
		return fmt.Errorf("question %s: unsupported level %q (must be dak, component, or asset)", d.ID, d.Level)
	}
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("question %s: title is required", d.ID)
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("question %s: description is required", d.ID)
	}
	if d.Parameters == nil {
		return fmt.Errorf("question %s: parameters is required (use an empty list for none)", d.ID)
	}
	if d.Tags == nil {
		return fmt.Errorf("question %s: tags is required (use an empty list for none)", d.ID)
	}
	for i, p := range d.Parameters {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("question %s: parameter %d: name is required", d.ID, i)
		}
		if _, ok := parameterTypes[p.Type]; !ok {
			return fmt.Errorf("question %s: parameter %s: unsupported type %q", d.ID, p.Name, p.Type)
		}
	}
	return nil
}

// HasTag reports whether the definition carries the given tag.
func (d Definition) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
