// Package schema provides schema access, exhaustive parameter validation,
// OpenAPI synthesis, and canonical-reference auditing over a loaded question
// registry. The service holds no state of its own; everything is derived from
// the registry on each call.
package schema

import (
	"fmt"
	"sort"

	"dakfaq/internal/question"
)

// NotFoundError reports an unknown question id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("question not found: %s", e.ID)
}

// Service answers schema questions about the loaded catalog.
type Service struct {
	registry *question.Registry
}

func NewService(reg *question.Registry) *Service {
	return &Service{registry: reg}
}

// QuestionSchema returns the declared schema for id. A loaded question
// without a schema yields nil, nil.
func (s *Service) QuestionSchema(id string) (*question.Schema, error) {
	m, ok := s.registry.Get(id)
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return m.Definition.Schema, nil
}

// AllSchemas maps question id to schema for every question declaring one.
func (s *Service) AllSchemas() map[string]*question.Schema {
	return s.registry.Schemas()
}

// ValidationResult carries the outcome of parameter validation. Errors holds
// every violation found, not just the first.
type ValidationResult struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

// ValidateParameters validates params against the question's declared
// parameters and schema. Validation is exhaustive: missing required fields,
// type mismatches, enum violations, and unknown parameters are all collected.
func (s *Service) ValidateParameters(id string, params map[string]any) (ValidationResult, error) {
	m, ok := s.registry.Get(id)
	if !ok {
		return ValidationResult{}, &NotFoundError{ID: id}
	}

	def := m.Definition
	violations := []string{}
	declared := make(map[string]question.Parameter, len(def.Parameters))

	for _, p := range def.Parameters {
		declared[p.Name] = p
		value, present := params[p.Name]
		if !present {
			if p.Required {
				violations = append(violations, fmt.Sprintf("missing required parameter %q", p.Name))
			}
			continue
		}
		if msg := checkType(p, value); msg != "" {
			violations = append(violations, msg)
		}
		if prop, ok := def.Schema.Property(p.Name); ok && len(prop.Enum) > 0 {
			if str, isString := value.(string); isString && !containsString(prop.Enum, str) {
				violations = append(violations, fmt.Sprintf("parameter %q: value %q is not one of %v", p.Name, str, prop.Enum))
			}
		}
	}

	var unknown []string
	for name := range params {
		if _, ok := declared[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		violations = append(violations, fmt.Sprintf("unknown parameter %q", name))
	}

	return ValidationResult{Valid: len(violations) == 0, Errors: violations}, nil
}

// checkType verifies a parameter value against its declared type. JSON
// decoding yields float64 for all numbers, so integer checks accept whole
// floats.
func checkType(p question.Parameter, value any) string {
	mismatch := func() string {
		return fmt.Sprintf("parameter %q: expected %s, got %T", p.Name, p.Type, value)
	}
	switch p.Type {
	case "string":
		if _, ok := value.(string); !ok {
			return mismatch()
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return mismatch()
		}
	case "number":
		switch value.(type) {
		case float64, float32, int, int32, int64:
		default:
			return mismatch()
		}
	case "integer":
		switch v := value.(type) {
		case int, int32, int64:
		case float64:
			if v != float64(int64(v)) {
				return mismatch()
			}
		default:
			return mismatch()
		}
	case "array":
		if _, ok := value.([]any); !ok {
			return mismatch()
		}
	case "object":
		if _, ok := value.(map[string]any); !ok {
			return mismatch()
		}
	}
	return ""
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
