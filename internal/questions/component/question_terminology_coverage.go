package component

import (
	"context"
	_ "embed"
	"encoding/json"

	"dakfaq/internal/question"
	"dakfaq/internal/storage"
)

//go:embed terminology_coverage.yaml
var terminologyCoverageDefinition []byte

const vocabularyPattern = "input/vocabulary/*.json"

// TerminologyCoverageQuestion lists the terminology resources the DAK ships.
type TerminologyCoverageQuestion struct{}

type terminologyResource struct {
	File         string `json:"file"`
	ResourceType string `json:"resourceType,omitempty"`
	URL          string `json:"url,omitempty"`
	Name         string `json:"name,omitempty"`
}

type terminologyPayload struct {
	Resources []terminologyResource `json:"resources"`
	Count     int                   `json:"count"`
}

func (q *TerminologyCoverageQuestion) Execute(ctx context.Context, in *question.Input) (*question.Result, error) {
	res := question.NewResult()
	wantType := in.StringParam("resourceType")

	files, err := in.Storage.ListFiles(ctx, vocabularyPattern, storage.ListOptions{})
	if err != nil {
		return nil, err
	}

	resources := []terminologyResource{}
	for _, file := range files {
		data, err := in.Storage.ReadFile(ctx, file)
		if err != nil {
			res.Warnf("read %s: %v", file, err)
			continue
		}
		var doc struct {
			ResourceType string `json:"resourceType"`
			URL          string `json:"url"`
			Name         string `json:"name"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			res.Warnf("parse %s: not a FHIR resource", file)
			continue
		}
		if wantType != "" && doc.ResourceType != wantType {
			continue
		}
		resources = append(resources, terminologyResource{
			File:         file,
			ResourceType: doc.ResourceType,
			URL:          doc.URL,
			Name:         doc.Name,
		})
	}

	res.Structured = terminologyPayload{Resources: resources, Count: len(resources)}
	if len(resources) == 0 {
		res.Narrative = in.Translate("terminology-coverage.none", nil)
	} else {
		res.Narrative = in.Translate("terminology-coverage.summary", map[string]any{"count": len(resources)})
	}
	res.Meta.CacheHint = &question.CacheHint{
		Scope:        question.CacheScopeRepository,
		Key:          "terminology-coverage",
		TTLSeconds:   1800,
		Dependencies: files,
	}
	return res, nil
}

func init() {
	question.Register(question.Registration{
		Source:     "questions/component/terminology_coverage",
		Definition: terminologyCoverageDefinition,
		Executor:   &TerminologyCoverageQuestion{},
	})
}
