package component

import (
	"context"
	_ "embed"
	"strings"

	"dakfaq/internal/question"
	"dakfaq/internal/storage"
)

//go:embed business_processes.yaml
var businessProcessesDefinition []byte

// bpmnPatterns are the locations SMART guidelines DAKs keep their process
// diagrams, in lookup order.
var bpmnPatterns = []string{
	"input/process/*.bpmn",
	"input/business-processes/*.bpmn",
	"input/images/*.bpmn",
}

// BusinessProcessesQuestion lists the BPMN diagrams and the processes they define.
type BusinessProcessesQuestion struct{}

type processInfo struct {
	File string `json:"file"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type processesPayload struct {
	Processes []processInfo `json:"processes"`
	Count     int           `json:"count"`
}

func (q *BusinessProcessesQuestion) Execute(ctx context.Context, in *question.Input) (*question.Result, error) {
	res := question.NewResult()

	files, err := listFirstMatch(ctx, in.Storage, bpmnPatterns)
	if err != nil {
		return nil, err
	}

	processes := []processInfo{}
	var lines []string
	for _, file := range files {
		data, err := in.Storage.ReadFile(ctx, file)
		if err != nil {
			res.Warnf("read %s: %v", file, err)
			continue
		}
		found := extractElements(data, "process")
		if len(found) == 0 {
			// Diagram without a process element still counts as one entry
			// so the catalog reflects every file.
			processes = append(processes, processInfo{File: file})
			lines = append(lines, file)
			continue
		}
		for _, el := range found {
			processes = append(processes, processInfo{File: file, ID: el.ID, Name: el.Name})
			lines = append(lines, in.Translate("business-processes.item", map[string]any{
				"file": file,
				"name": el.Name,
			}))
		}
	}

	res.Structured = processesPayload{Processes: processes, Count: len(processes)}
	if len(processes) == 0 {
		res.Narrative = in.Translate("business-processes.none", nil)
	} else {
		summary := in.Translate("business-processes.summary", map[string]any{"count": len(processes)})
		res.Narrative = summary + " " + strings.Join(lines, "; ")
	}
	res.Meta.CacheHint = &question.CacheHint{
		Scope:        question.CacheScopeRepository,
		Key:          "business-processes",
		TTLSeconds:   1800,
		Dependencies: files,
	}
	return res, nil
}

// listFirstMatch returns the files for the first pattern that matches
// anything, preserving the pattern precedence order.
func listFirstMatch(ctx context.Context, s storage.Storage, patterns []string) ([]string, error) {
	for _, pattern := range patterns {
		files, err := s.ListFiles(ctx, pattern, storage.ListOptions{})
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			return files, nil
		}
	}
	return nil, nil
}

func init() {
	question.Register(question.Registration{
		Source:     "questions/component/business_processes",
		Definition: businessProcessesDefinition,
		Executor:   &BusinessProcessesQuestion{},
	})
}
