package component

import (
	"context"
	_ "embed"
	"strings"

	"dakfaq/internal/question"
)

//go:embed decision_tables.yaml
var decisionTablesDefinition []byte

var dmnPatterns = []string{
	"input/decision-logic/*.dmn",
	"input/dmn/*.dmn",
}

// DecisionTablesQuestion lists the DMN decision tables in the DAK.
type DecisionTablesQuestion struct{}

type decisionInfo struct {
	File string `json:"file"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type decisionsPayload struct {
	Decisions []decisionInfo `json:"decisions"`
	Count     int            `json:"count"`
}

func (q *DecisionTablesQuestion) Execute(ctx context.Context, in *question.Input) (*question.Result, error) {
	res := question.NewResult()

	files, err := listFirstMatch(ctx, in.Storage, dmnPatterns)
	if err != nil {
		return nil, err
	}

	decisions := []decisionInfo{}
	var lines []string
	for _, file := range files {
		data, err := in.Storage.ReadFile(ctx, file)
		if err != nil {
			res.Warnf("read %s: %v", file, err)
			continue
		}
		for _, el := range extractElements(data, "decision") {
			decisions = append(decisions, decisionInfo{File: file, ID: el.ID, Name: el.Name})
			lines = append(lines, in.Translate("decision-tables.item", map[string]any{
				"file": file,
				"name": el.Name,
			}))
		}
	}

	res.Structured = decisionsPayload{Decisions: decisions, Count: len(decisions)}
	if len(decisions) == 0 {
		res.Narrative = in.Translate("decision-tables.none", nil)
	} else {
		summary := in.Translate("decision-tables.summary", map[string]any{"count": len(decisions)})
		res.Narrative = summary + " " + strings.Join(lines, "; ")
	}
	res.Meta.CacheHint = &question.CacheHint{
		Scope:        question.CacheScopeRepository,
		Key:          "decision-tables",
		TTLSeconds:   1800,
		Dependencies: files,
	}
	return res, nil
}

func init() {
	question.Register(question.Registration{
		Source:     "questions/component/decision_tables",
		Definition: decisionTablesDefinition,
		Executor:   &DecisionTablesQuestion{},
	})
}
