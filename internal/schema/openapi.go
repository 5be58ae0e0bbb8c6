package schema

import "sort"

// OpenAPIDocument synthesizes an OpenAPI 3 description of the execute
// endpoint from the loaded catalog. The document is rebuilt on every call so
// it always matches the current registry; components/schemas holds exactly
// one entry per question declaring a schema, keyed by question id.
func (s *Service) OpenAPIDocument() map[string]any {
	ids := []string{}
	for _, m := range s.registry.All() {
		ids = append(ids, m.Definition.ID)
	}
	sort.Strings(ids)

	componentSchemas := map[string]any{}
	for id, sch := range s.registry.Schemas() {
		componentSchemas[id] = sch
	}

	requestSchema := map[string]any{
		"type":     "object",
		"required": []string{"requests"},
		"properties": map[string]any{
			"requests": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"questionId"},
					"properties": map[string]any{
						"questionId": map[string]any{
							"type": "string",
							"enum": ids,
						},
						"parameters": map[string]any{
							"type": "object",
						},
						"assetFiles": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
				},
			},
			"context": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"repositoryPath": map[string]any{"type": "string"},
				},
			},
		},
	}

	responseSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean"},
			"results": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"success":    map[string]any{"type": "boolean"},
						"questionId": map[string]any{"type": "string"},
						"result":     map[string]any{"type": "object"},
						"error":      map[string]any{"type": "string"},
						"timestamp":  map[string]any{"type": "string", "format": "date-time"},
					},
				},
			},
			"summary": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"total":      map[string]any{"type": "integer"},
					"successful": map[string]any{"type": "integer"},
					"failed":     map[string]any{"type": "integer"},
				},
			},
		},
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "DAK FAQ API",
			"description": "Structured questions over a Digital Adaptation Kit repository.",
			"version":     "1.0.0",
		},
		"paths": map[string]any{
			"/faq/questions/execute": map[string]any{
				"post": map[string]any{
					"summary":     "Execute a batch of FAQ questions",
					"operationId": "executeQuestions",
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json": map[string]any{"schema": requestSchema},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Batch execution results, one entry per request",
							"content": map[string]any{
								"application/json": map[string]any{"schema": responseSchema},
							},
						},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": componentSchemas,
		},
	}
}
