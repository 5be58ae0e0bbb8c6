package dak

import (
	"context"
	_ "embed"

	"dakfaq/internal/question"
)

//go:embed dak_version.yaml
var versionDefinition []byte

// VersionQuestion answers which version the DAK declares.
type VersionQuestion struct{}

type versionPayload struct {
	Repository string `json:"repository"`
	Version    string `json:"version"`
	Name       string `json:"name,omitempty"`
	ID         string `json:"id,omitempty"`
	Status     string `json:"status,omitempty"`
}

func (q *VersionQuestion) Execute(ctx context.Context, in *question.Input) (*question.Result, error) {
	res := question.NewResult()
	repository := in.StringParam("repository")

	cfg, err := readSushiConfig(ctx, in.Storage)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		res.Narrative = in.Translate("dak-version.missing", nil)
		res.Errorf("%s not found", sushiConfigPath)
		return res, nil
	}

	res.Structured = versionPayload{
		Repository: repository,
		Version:    cfg.Version,
		Name:       cfg.Name,
		ID:         cfg.ID,
		Status:     cfg.Status,
	}
	res.Narrative = in.Translate("dak-version.summary", map[string]any{
		"repository": repository,
		"version":    cfg.Version,
	})
	res.Meta.CacheHint = &question.CacheHint{
		Scope:        question.CacheScopeFile,
		Key:          "dak-version:" + repository,
		TTLSeconds:   3600,
		Dependencies: []string{sushiConfigPath},
	}
	return res, nil
}

func init() {
	question.Register(question.Registration{
		Source:     "questions/dak/dak_version",
		Definition: versionDefinition,
		Executor:   &VersionQuestion{},
	})
}
