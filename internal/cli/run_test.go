package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dakfaq/internal/engine"
	"dakfaq/internal/question"
)

func TestParseParamAssignments(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    map[string]any
		wantErr string
	}{
		{
			name:   "empty",
			values: nil,
			want:   nil,
		},
		{
			name:   "single assignment",
			values: []string{"repository=."},
			want:   map[string]any{"repository": "."},
		},
		{
			name:   "value may contain equals",
			values: []string{"filter=status=active"},
			want:   map[string]any{"filter": "status=active"},
		},
		{
			name:   "empty value allowed",
			values: []string{"suffix="},
			want:   map[string]any{"suffix": ""},
		},
		{
			name:    "missing equals",
			values:  []string{"repository"},
			wantErr: "expected key=value",
		},
		{
			name:    "empty key",
			values:  []string{"=value"},
			wantErr: "non-empty key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParamAssignments(tt.values)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("want error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error %q missing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseParamAssignments error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("want %d params, got %d: %v", len(tt.want), len(got), got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Fatalf("param %s: want %v, got %v", k, v, got[k])
				}
			}
		})
	}
}

func TestCoerceParamStrings(t *testing.T) {
	def := []byte(`
id: q-typed
level: dak
title: q-typed
description: Typed parameters for coercion.
parameters:
  - name: repository
    type: string
    required: true
  - name: includeExtensions
    type: boolean
  - name: limit
    type: integer
  - name: threshold
    type: number
tags: []
`)
	regs := []question.Registration{{
		Source:     "test",
		Definition: def,
		Executor: question.ExecutorFunc(func(ctx context.Context, in *question.Input) (*question.Result, error) {
			return question.NewResult(), nil
		}),
	}}
	eng := engine.New(question.NewRegistry(question.WithSource(func() []question.Registration { return regs })))

	reqs := []engine.Request{{
		QuestionID: "q-typed",
		Parameters: map[string]any{
			"repository":        "who/x",
			"includeExtensions": "true",
			"limit":             "25",
			"threshold":         "0.75",
		},
	}}
	coerceParamStrings(eng, context.Background(), reqs)

	params := reqs[0].Parameters
	if got, ok := params["includeExtensions"].(bool); !ok || !got {
		t.Fatalf("includeExtensions = %#v, want true", params["includeExtensions"])
	}
	if got, ok := params["limit"].(int64); !ok || got != 25 {
		t.Fatalf("limit = %#v, want int64 25", params["limit"])
	}
	if got, ok := params["threshold"].(float64); !ok || got != 0.75 {
		t.Fatalf("threshold = %#v, want float64 0.75", params["threshold"])
	}
	if got, ok := params["repository"].(string); !ok || got != "who/x" {
		t.Fatalf("repository = %#v, want string who/x", params["repository"])
	}

	// Unparseable values stay strings so validation can report the mismatch.
	bad := []engine.Request{{
		QuestionID: "q-typed",
		Parameters: map[string]any{"includeExtensions": "maybe"},
	}}
	coerceParamStrings(eng, context.Background(), bad)
	if got, ok := bad[0].Parameters["includeExtensions"].(string); !ok || got != "maybe" {
		t.Fatalf("includeExtensions = %#v, want the raw string", bad[0].Parameters["includeExtensions"])
	}

	// Unknown questions pass through untouched; validation rejects them later.
	unknown := []engine.Request{{
		QuestionID: "no-such-question",
		Parameters: map[string]any{"limit": "25"},
	}}
	coerceParamStrings(eng, context.Background(), unknown)
	if got, ok := unknown[0].Parameters["limit"].(string); !ok || got != "25" {
		t.Fatalf("limit = %#v, want the raw string", unknown[0].Parameters["limit"])
	}
}

func TestReadBatchFile(t *testing.T) {
	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "requests.json")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		return path
	}

	t.Run("wrapped requests object", func(t *testing.T) {
		path := writeFile(t, `{"requests": [{"questionId": "dak-version", "parameters": {"repository": "."}}]}`)
		reqs, repoPath, err := readBatchFile(path)
		if err != nil {
			t.Fatalf("readBatchFile: %v", err)
		}
		if len(reqs) != 1 || reqs[0].QuestionID != "dak-version" {
			t.Fatalf("unexpected requests: %+v", reqs)
		}
		if reqs[0].Parameters["repository"] != "." {
			t.Fatalf("parameters not parsed: %+v", reqs[0].Parameters)
		}
		if repoPath != "" {
			t.Fatalf("unexpected repository path: %q", repoPath)
		}
	})

	t.Run("context repository path", func(t *testing.T) {
		path := writeFile(t, `{"requests": [{"questionId": "dak-name"}], "context": {"repositoryPath": "/srv/dak"}}`)
		_, repoPath, err := readBatchFile(path)
		if err != nil {
			t.Fatalf("readBatchFile: %v", err)
		}
		if repoPath != "/srv/dak" {
			t.Fatalf("repository path: got %q", repoPath)
		}
	})

	t.Run("bare array", func(t *testing.T) {
		path := writeFile(t, `[{"questionId": "dak-name"}, {"questionId": "asset-summary", "assetFiles": ["a.bpmn"]}]`)
		reqs, _, err := readBatchFile(path)
		if err != nil {
			t.Fatalf("readBatchFile: %v", err)
		}
		if len(reqs) != 2 {
			t.Fatalf("want 2 requests, got %d", len(reqs))
		}
		if len(reqs[1].AssetFiles) != 1 || reqs[1].AssetFiles[0] != "a.bpmn" {
			t.Fatalf("asset files not parsed: %+v", reqs[1])
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeFile(t, `{not json`)
		if _, _, err := readBatchFile(path); err == nil {
			t.Fatalf("want parse error, got nil")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, _, err := readBatchFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Fatalf("want read error, got nil")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, _, err := readBatchFile(""); err == nil {
			t.Fatalf("want required-flag error, got nil")
		}
	})
}
