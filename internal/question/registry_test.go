package question

import (
	"context"
	"reflect"
	"testing"
)

func noopExecutor() Executor {
	return ExecutorFunc(func(ctx context.Context, in *Input) (*Result, error) {
		return NewResult(), nil
	})
}

func validDefinition(id string) []byte {
	return []byte(`
id: ` + id + `
level: dak
title: Test Question
description: A question used in registry tests.
parameters: []
tags: [test]
`)
}

func TestRegistryLoadAll(t *testing.T) {
	regs := []Registration{
		{Source: "a", Definition: validDefinition("q-a"), Executor: noopExecutor()},
		{Source: "b", Definition: validDefinition("q-b"), Executor: noopExecutor()},
	}
	r := NewRegistry(WithSource(func() []Registration { return regs }))

	warnings := r.LoadAll()
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	all := r.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(all))
	}
	for _, m := range all {
		got, ok := r.Get(m.Definition.ID)
		if !ok {
			t.Fatalf("Get(%q) not found", m.Definition.ID)
		}
		if got.Definition.ID != m.Definition.ID {
			t.Fatalf("Get(%q) returned id %q", m.Definition.ID, got.Definition.ID)
		}
	}
}

func TestRegistryLoadAllIsIdempotent(t *testing.T) {
	calls := 0
	regs := []Registration{
		{Source: "a", Definition: validDefinition("q-a"), Executor: noopExecutor()},
	}
	r := NewRegistry(WithSource(func() []Registration {
		calls++
		return regs
	}))

	first := r.LoadAll()
	second := r.LoadAll()

	if calls != 1 {
		t.Fatalf("source consulted %d times, want 1", calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("warnings differ between calls: %v vs %v", first, second)
	}
	if len(r.All()) != 1 {
		t.Fatalf("expected 1 module after repeated load, got %d", len(r.All()))
	}
}

func TestRegistryIsolatesBrokenModules(t *testing.T) {
	tests := []struct {
		name string
		reg  Registration
	}{
		{
			name: "missing executor",
			reg:  Registration{Source: "no-exec", Definition: validDefinition("q-broken")},
		},
		{
			name: "missing definition",
			reg:  Registration{Source: "no-def", Executor: noopExecutor()},
		},
		{
			name: "unparseable yaml",
			reg:  Registration{Source: "bad-yaml", Definition: []byte("{"), Executor: noopExecutor()},
		},
		{
			name: "missing required field",
			reg: Registration{Source: "no-title", Executor: noopExecutor(), Definition: []byte(`
id: q-broken
level: dak
description: Missing a title.
parameters: []
tags: []
`)},
		},
		{
			name: "unknown level",
			reg: Registration{Source: "bad-level", Executor: noopExecutor(), Definition: []byte(`
id: q-broken
level: galaxy
title: Broken
description: Bad level.
parameters: []
tags: []
`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regs := []Registration{
				tt.reg,
				{Source: "ok", Definition: validDefinition("q-ok"), Executor: noopExecutor()},
			}
			r := NewRegistry(WithSource(func() []Registration { return regs }))

			warnings := r.LoadAll()
			if len(warnings) != 1 {
				t.Fatalf("expected 1 warning, got %v", warnings)
			}
			if _, ok := r.Get("q-broken"); ok {
				t.Fatal("broken module must not be loaded")
			}
			if _, ok := r.Get("q-ok"); !ok {
				t.Fatal("healthy module must still load")
			}
		})
	}
}

func TestRegistryRejectsDuplicateIDs(t *testing.T) {
	regs := []Registration{
		{Source: "first", Definition: validDefinition("q-dup"), Executor: noopExecutor()},
		{Source: "second", Definition: validDefinition("q-dup"), Executor: noopExecutor()},
	}
	r := NewRegistry(WithSource(func() []Registration { return regs }))

	warnings := r.LoadAll()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 duplicate warning, got %v", warnings)
	}
	if len(r.All()) != 1 {
		t.Fatalf("expected 1 module, got %d", len(r.All()))
	}
}

func TestRegistrySchemas(t *testing.T) {
	withSchema := []byte(`
id: q-schema
level: component
title: With Schema
description: Declares a schema.
parameters:
  - name: componentType
    type: string
    required: true
tags: [test]
schema:
  type: object
  properties:
    componentType:
      type: string
      enum: [businessProcesses, decisionLogic]
`)
	regs := []Registration{
		{Source: "schema", Definition: withSchema, Executor: noopExecutor()},
		{Source: "plain", Definition: validDefinition("q-plain"), Executor: noopExecutor()},
	}
	r := NewRegistry(WithSource(func() []Registration { return regs }))
	r.LoadAll()

	schemas := r.Schemas()
	if len(schemas) != 1 {
		t.Fatalf("expected 1 schema, got %d", len(schemas))
	}
	s, ok := schemas["q-schema"]
	if !ok {
		t.Fatal("q-schema schema missing")
	}
	prop, ok := s.Property("componentType")
	if !ok {
		t.Fatal("componentType property missing")
	}
	if len(prop.Enum) != 2 {
		t.Fatalf("unexpected enum: %v", prop.Enum)
	}
}

func TestParseDefinitionParameterValidation(t *testing.T) {
	bad := []byte(`
id: q-params
level: dak
title: Params
description: Parameter type check.
parameters:
  - name: count
    type: decimal
tags: []
`)
	if _, err := ParseDefinition(bad); err == nil {
		t.Fatal("expected error for unsupported parameter type")
	}
}
