package engine

import (
	"context"

	"dakfaq/internal/question"
)

// Filters narrows a catalog query. Zero-value fields match everything; Tags
// matches questions carrying at least one of the requested tags.
type Filters struct {
	Level         string   `json:"level,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	ComponentType string   `json:"componentType,omitempty"`
	AssetType     string   `json:"assetType,omitempty"`
}

// Catalog returns the loaded question definitions matching the filters, in
// catalog order. It is a pure query; nothing is mutated.
func (e *Engine) Catalog(ctx context.Context, f Filters) []question.Definition {
	e.Initialize(ctx)

	out := []question.Definition{}
	for _, m := range e.registry.All() {
		if matchesFilters(m.Definition, f) {
			out = append(out, m.Definition)
		}
	}
	return out
}

func matchesFilters(d question.Definition, f Filters) bool {
	if f.Level != "" && string(d.Level) != f.Level {
		return false
	}
	if f.ComponentType != "" && d.ComponentType != f.ComponentType {
		return false
	}
	if f.AssetType != "" && d.AssetType != f.AssetType {
		return false
	}
	if len(f.Tags) > 0 {
		any := false
		for _, tag := range f.Tags {
			if d.HasTag(tag) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}
