// Package asset holds the asset-level question modules, which operate on
// caller-supplied asset files rather than scanning the repository.
package asset

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/xml"
	"io"
	"path"
	"strings"

	"dakfaq/internal/question"
)

//go:embed asset_summary.yaml
var assetSummaryDefinition []byte

// AssetSummaryQuestion summarizes each supplied asset file.
type AssetSummaryQuestion struct{}

type assetInfo struct {
	Path      string `json:"path"`
	Exists    bool   `json:"exists"`
	SizeBytes int    `json:"sizeBytes"`
	Extension string `json:"extension,omitempty"`
	RootName  string `json:"rootElement,omitempty"`
}

type assetsPayload struct {
	Files []assetInfo `json:"files"`
	Count int         `json:"count"`
}

func (q *AssetSummaryQuestion) Execute(ctx context.Context, in *question.Input) (*question.Result, error) {
	res := question.NewResult()

	files := in.AssetFiles
	if len(files) == 0 && in.AssetFile != "" {
		files = []string{in.AssetFile}
	}
	if len(files) == 0 {
		res.Narrative = in.Translate("asset-summary.none", nil)
		res.Errorf("no asset files were provided")
		return res, nil
	}

	infos := []assetInfo{}
	for _, file := range files {
		info := assetInfo{Path: file, Extension: strings.TrimPrefix(path.Ext(file), ".")}
		exists, err := in.Storage.FileExists(ctx, file)
		if err != nil {
			return nil, err
		}
		if !exists {
			res.Warnf("%s", in.Translate("asset-summary.missing", map[string]any{"file": file}))
			infos = append(infos, info)
			continue
		}
		data, err := in.Storage.ReadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		info.Exists = true
		info.SizeBytes = len(data)
		info.RootName = rootElementName(data)
		infos = append(infos, info)
	}

	res.Structured = assetsPayload{Files: infos, Count: len(infos)}
	res.Narrative = in.Translate("asset-summary.summary", map[string]any{"count": len(infos)})
	res.Meta.CacheHint = &question.CacheHint{
		Scope:        question.CacheScopeFile,
		Key:          "asset-summary:" + strings.Join(files, ","),
		TTLSeconds:   600,
		Dependencies: files,
	}
	return res, nil
}

// rootElementName returns the local name of the first XML start element, or
// "" for non-XML content.
func rootElementName(data []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF || err != nil {
			return ""
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local
		}
	}
}

func init() {
	question.Register(question.Registration{
		Source:     "questions/asset/asset_summary",
		Definition: assetSummaryDefinition,
		Executor:   &AssetSummaryQuestion{},
	})
}
