package component

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"strings"

	"dakfaq/internal/question"
	"dakfaq/internal/storage"
)

//go:embed data_elements.yaml
var dataElementsDefinition []byte

const fshPattern = "input/fsh/**/*.fsh"

// DataElementsQuestion lists the FSH profile and logical model definitions.
type DataElementsQuestion struct{}

type dataElement struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	File string `json:"file"`
}

type dataElementsPayload struct {
	Elements []dataElement `json:"elements"`
	Count    int           `json:"count"`
	Files    int           `json:"files"`
}

func (q *DataElementsQuestion) Execute(ctx context.Context, in *question.Input) (*question.Result, error) {
	res := question.NewResult()
	includeExtensions, _ := in.Parameters["includeExtensions"].(bool)

	files, err := in.Storage.ListFiles(ctx, fshPattern, storage.ListOptions{})
	if err != nil {
		return nil, err
	}

	elements := []dataElement{}
	for _, file := range files {
		data, err := in.Storage.ReadFile(ctx, file)
		if err != nil {
			res.Warnf("read %s: %v", file, err)
			continue
		}
		elements = append(elements, scanFSHDefinitions(data, file, includeExtensions)...)
	}

	res.Structured = dataElementsPayload{Elements: elements, Count: len(elements), Files: len(files)}
	if len(elements) == 0 {
		res.Narrative = in.Translate("data-elements.none", nil)
	} else {
		res.Narrative = in.Translate("data-elements.summary", map[string]any{
			"count": len(elements),
			"files": len(files),
		})
	}
	res.Meta.CacheHint = &question.CacheHint{
		Scope:        question.CacheScopeRepository,
		Key:          "data-elements",
		TTLSeconds:   1800,
		Dependencies: files,
	}
	return res, nil
}

// scanFSHDefinitions pulls Profile/Logical (and optionally Extension)
// declarations out of a FHIR Shorthand file. FSH keywords start a line and
// are followed by a colon and the definition name.
func scanFSHDefinitions(data []byte, file string, includeExtensions bool) []dataElement {
	kinds := map[string]string{
		"Profile": "profile",
		"Logical": "logical",
	}
	if includeExtensions {
		kinds["Extension"] = "extension"
	}

	var out []dataElement
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		keyword, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		kind, ok := kinds[strings.TrimSpace(keyword)]
		if !ok {
			continue
		}
		name := strings.TrimSpace(rest)
		if name == "" {
			continue
		}
		out = append(out, dataElement{Name: name, Kind: kind, File: file})
	}
	return out
}

func init() {
	question.Register(question.Registration{
		Source:     "questions/component/data_elements",
		Definition: dataElementsDefinition,
		Executor:   &DataElementsQuestion{},
	})
}
