package dak

import (
	"context"
	"strings"
	"testing"

	"dakfaq/internal/i18n"
	"dakfaq/internal/question"
	"dakfaq/internal/storage"
)

func translator(t *testing.T) i18n.TranslateFunc {
	t.Helper()
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		t.Fatalf("i18n.LoadEmbedded: %v", err)
	}
	fn, _ := bundle.Translator("en")
	return fn
}

const sushiFixture = `
id: smart.who.int.immunizations
canonical: http://smart.who.int/immunizations
name: Immunizations
title: WHO SMART Guidelines - Immunizations
version: 1.0.0
status: active
description: Digital adaptation kit for immunization guidelines.
`

func execute(t *testing.T, q question.Executor, s storage.Storage, params map[string]any) *question.Result {
	t.Helper()
	res, err := q.Execute(context.Background(), &question.Input{
		Storage:    s,
		Parameters: params,
		Locale:     "en",
		T:          translator(t),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res == nil {
		t.Fatal("Execute returned nil result")
	}
	return res
}

func TestVersionQuestion(t *testing.T) {
	s := storage.NewMemoryText(map[string]string{"sushi-config.yaml": sushiFixture})
	res := execute(t, &VersionQuestion{}, s, map[string]any{"repository": "who/smart-immunizations"})

	if res.Failed() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	payload, ok := res.Structured.(versionPayload)
	if !ok {
		t.Fatalf("unexpected structured type %T", res.Structured)
	}
	if payload.Version != "1.0.0" {
		t.Fatalf("version = %q, want 1.0.0", payload.Version)
	}
	if !strings.Contains(res.Narrative, "1.0.0") {
		t.Fatalf("narrative %q does not mention the version", res.Narrative)
	}
	if res.Meta.CacheHint == nil || res.Meta.CacheHint.Scope != question.CacheScopeFile {
		t.Fatalf("unexpected cache hint: %+v", res.Meta.CacheHint)
	}
}

func TestVersionQuestionMissingConfig(t *testing.T) {
	s := storage.NewMemoryText(map[string]string{})
	res := execute(t, &VersionQuestion{}, s, map[string]any{"repository": "who/empty"})

	if !res.Failed() {
		t.Fatal("expected a failed result when sushi-config.yaml is absent")
	}
	if res.Narrative == "" {
		t.Fatal("expected a narrative even on failure")
	}
}

func TestNameQuestion(t *testing.T) {
	s := storage.NewMemoryText(map[string]string{"sushi-config.yaml": sushiFixture})
	res := execute(t, &NameQuestion{}, s, map[string]any{"repository": "who/smart-immunizations"})

	if res.Failed() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	payload, ok := res.Structured.(namePayload)
	if !ok {
		t.Fatalf("unexpected structured type %T", res.Structured)
	}
	if payload.ID != "smart.who.int.immunizations" {
		t.Fatalf("id = %q", payload.ID)
	}
	if !strings.Contains(res.Narrative, "WHO SMART Guidelines - Immunizations") {
		t.Fatalf("narrative %q does not mention the title", res.Narrative)
	}
}

func TestDefinitionsAreWellFormed(t *testing.T) {
	for _, raw := range [][]byte{versionDefinition, nameDefinition} {
		def, err := question.ParseDefinition(raw)
		if err != nil {
			t.Fatalf("ParseDefinition: %v", err)
		}
		if def.Level != question.LevelDAK {
			t.Fatalf("question %s: level = %q, want dak", def.ID, def.Level)
		}
		if def.Schema == nil {
			t.Fatalf("question %s: schema missing", def.ID)
		}
	}
}
