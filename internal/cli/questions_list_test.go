package cli

import (
	"bytes"
	"strings"
	"testing"

	"dakfaq/internal/question"

	_ "dakfaq/internal/questions/asset"
	_ "dakfaq/internal/questions/component"
	_ "dakfaq/internal/questions/dak"
)

func TestPrintQuestion(t *testing.T) {
	tests := []struct {
		name           string
		def            question.Definition
		expectedOutput []string
		notExpected    []string
	}{
		{
			name: "question without parameters",
			def: question.Definition{
				ID:          "simple-question",
				Level:       question.LevelDAK,
				Title:       "Simple Question",
				Description: "A simple question description",
			},
			expectedOutput: []string{
				"QUESTION: simple-question (dak)",
				"Simple Question",
				"A simple question description",
			},
			notExpected: []string{
				"Parameters:",
			},
		},
		{
			name: "question with parameters and tags",
			def: question.Definition{
				ID:            "param-question",
				Level:         question.LevelComponent,
				Title:         "Param Question",
				Description:   "A parameterized question",
				Tags:          []string{"metadata", "terminology"},
				ComponentType: "decision-support",
				Parameters: []question.Parameter{
					{
						Name:        "repository",
						Type:        "string",
						Required:    true,
						Description: "Repository to inspect",
					},
				},
			},
			expectedOutput: []string{
				"QUESTION: param-question (component)",
				"Tags: metadata, terminology",
				"Component type: decision-support",
				"Parameters:",
				"repository",
				"Description: Repository to inspect",
				"Type:        string",
				"Required:    true",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printQuestion(&buf, tt.def)

			got := buf.String()
			for _, want := range tt.expectedOutput {
				if !strings.Contains(got, want) {
					t.Fatalf("output missing %q; got:\n%s", want, got)
				}
			}
			for _, notWant := range tt.notExpected {
				if strings.Contains(got, notWant) {
					t.Fatalf("output unexpectedly contains %q; got:\n%s", notWant, got)
				}
			}
		})
	}
}

func TestQuestionsList_RegisteredCatalog(t *testing.T) {
	var buf bytes.Buffer
	questionsListCmd.SetOut(&buf)
	defer questionsListCmd.SetOut(nil)

	questionsListQuiet = true
	defer func() { questionsListQuiet = false }()

	if err := questionsListCmd.RunE(questionsListCmd, nil); err != nil {
		t.Fatalf("questions list: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"dak-version", "dak-name", "business-processes", "decision-tables", "data-elements", "terminology-coverage", "asset-summary"} {
		if !strings.Contains(got, want) {
			t.Fatalf("catalog missing %q; got:\n%s", want, got)
		}
	}
}

func TestQuestionsList_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	questionsListCmd.SetOut(&buf)
	defer questionsListCmd.SetOut(nil)

	questionsListQuiet = true
	questionsListFilters.Level = "dak"
	defer func() {
		questionsListQuiet = false
		questionsListFilters.Level = ""
	}()

	if err := questionsListCmd.RunE(questionsListCmd, nil); err != nil {
		t.Fatalf("questions list: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "dak-version") {
		t.Fatalf("dak-level question missing; got:\n%s", got)
	}
	if strings.Contains(got, "business-processes") {
		t.Fatalf("component-level question not filtered out; got:\n%s", got)
	}
}

func TestQuestionsShow_NotFound(t *testing.T) {
	err := questionsShowCmd.RunE(questionsShowCmd, []string{"no-such-question"})
	if err == nil {
		t.Fatalf("expected error for unknown question")
	}
	if !strings.Contains(err.Error(), "question not found: no-such-question") {
		t.Fatalf("unexpected error: %v", err)
	}
}
