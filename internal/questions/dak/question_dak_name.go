package dak

import (
	"context"
	_ "embed"

	"dakfaq/internal/question"
)

//go:embed dak_name.yaml
var nameDefinition []byte

// NameQuestion answers what this DAK is called.
type NameQuestion struct{}

type namePayload struct {
	Repository  string `json:"repository"`
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Title       string `json:"title,omitempty"`
	Canonical   string `json:"canonical,omitempty"`
	Description string `json:"description,omitempty"`
}

func (q *NameQuestion) Execute(ctx context.Context, in *question.Input) (*question.Result, error) {
	res := question.NewResult()
	repository := in.StringParam("repository")

	cfg, err := readSushiConfig(ctx, in.Storage)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		res.Narrative = in.Translate("dak-name.missing", nil)
		res.Errorf("%s not found", sushiConfigPath)
		return res, nil
	}

	display := cfg.Title
	if display == "" {
		display = cfg.Name
	}

	res.Structured = namePayload{
		Repository:  repository,
		ID:          cfg.ID,
		Name:        cfg.Name,
		Title:       cfg.Title,
		Canonical:   cfg.Canonical,
		Description: cfg.Description,
	}
	res.Narrative = in.Translate("dak-name.summary", map[string]any{
		"name": display,
		"id":   cfg.ID,
	})
	res.Meta.CacheHint = &question.CacheHint{
		Scope:        question.CacheScopeFile,
		Key:          "dak-name:" + repository,
		TTLSeconds:   3600,
		Dependencies: []string{sushiConfigPath},
	}
	return res, nil
}

func init() {
	question.Register(question.Registration{
		Source:     "questions/dak/dak_name",
		Definition: nameDefinition,
		Executor:   &NameQuestion{},
	})
}
