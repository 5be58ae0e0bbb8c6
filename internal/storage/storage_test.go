package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"input/process/*.bpmn", "input/process/workflow1.bpmn", true},
		{"input/process/*.bpmn", "input/process/nested/workflow1.bpmn", false},
		{"input/fsh/**/*.fsh", "input/fsh/profiles/patient.fsh", true},
		{"input/fsh/**/*.fsh", "input/fsh/patient.fsh", true},
		{"**/*.dmn", "input/decision-logic/dt.dmn", true},
		{"*.yaml", "sushi-config.yaml", true},
		{"*.yaml", "input/sushi-config.yaml", false},
		{"input/*.json", "input/data.xml", false},
	}
	for _, tt := range tests {
		if got := globMatch(tt.pattern, tt.path); got != tt.want {
			t.Fatalf("globMatch(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"sushi-config.yaml":            "version: 1.0.0\n",
		"input/process/workflow1.bpmn": "<definitions/>",
		"input/process/workflow2.bpmn": "<definitions/>",
		"input/fsh/profiles/a.fsh":     "Profile: A",
		".git/config":                  "ignored",
	}
	for p, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	data, err := s.ReadFile(ctx, "sushi-config.yaml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "version: 1.0.0\n" {
		t.Fatalf("unexpected content: %q", data)
	}

	exists, err := s.FileExists(ctx, "input/process/workflow1.bpmn")
	if err != nil || !exists {
		t.Fatalf("FileExists = %v, %v; want true, nil", exists, err)
	}
	exists, err = s.FileExists(ctx, "input/process/missing.bpmn")
	if err != nil || exists {
		t.Fatalf("FileExists for missing = %v, %v; want false, nil", exists, err)
	}

	got, err := s.ListFiles(ctx, "input/process/*.bpmn", ListOptions{})
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := []string{"input/process/workflow1.bpmn", "input/process/workflow2.bpmn"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListFiles = %v, want %v", got, want)
	}

	// Dotted directories are not scanned.
	got, err = s.ListFiles(ctx, "**/config", ListOptions{})
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches under .git, got %v", got)
	}

	got, err = s.ListFiles(ctx, "input/**/*", ListOptions{Limit: 1})
	if err != nil {
		t.Fatalf("ListFiles with limit: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %v", got)
	}
}

func TestLocalStorageRejectsEscapes(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	for _, p := range []string{"../etc/passwd", "..", ""} {
		if _, err := s.ReadFile(context.Background(), p); err == nil {
			t.Fatalf("expected error reading %q", p)
		}
	}
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryText(map[string]string{
		"sushi-config.yaml":            "id: smart.who.int.immunizations\n",
		"input/process/workflow1.bpmn": "<definitions/>",
	})
	ctx := context.Background()

	data, err := s.ReadFile(ctx, "sushi-config.yaml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected content")
	}

	if _, err := s.ReadFile(ctx, "missing.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}

	got, err := s.ListFiles(ctx, "input/**/*.bpmn", ListOptions{})
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(got) != 1 || got[0] != "input/process/workflow1.bpmn" {
		t.Fatalf("ListFiles = %v", got)
	}
}
