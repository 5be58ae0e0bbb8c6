package schema

import (
	"regexp"

	"dakfaq/internal/question"
)

// CanonicalReferences walks the question's schema tree (properties, nested
// properties, array item schemas) and returns every x-canonical-url
// annotation, de-duplicated in first-seen order.
func (s *Service) CanonicalReferences(id string) ([]string, error) {
	m, ok := s.registry.Get(id)
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return collectCanonicals(m.Definition.Schema), nil
}

func collectCanonicals(root *question.Schema) []string {
	urls := []string{}
	seen := make(map[string]bool)
	var walk func(s *question.Schema)
	walk = func(s *question.Schema) {
		if s == nil {
			return
		}
		if s.CanonicalURL != "" && !seen[s.CanonicalURL] {
			seen[s.CanonicalURL] = true
			urls = append(urls, s.CanonicalURL)
		}
		for _, name := range s.SortedPropertyNames() {
			walk(s.Properties[name])
		}
		walk(s.Items)
	}
	walk(root)
	return urls
}

// QuestionCanonicals pairs a question id with its canonical references.
type QuestionCanonicals struct {
	QuestionID string   `json:"questionId"`
	URLs       []string `json:"canonicals"`
}

// Suggestion flags schema fields that look like they should carry a canonical
// reference. Suggestions are advisory only; schemas are never mutated.
type Suggestion struct {
	QuestionID      string   `json:"questionId"`
	CandidateFields []string `json:"candidateFields"`
}

// Audit partitions the catalog by canonical-reference coverage.
type Audit struct {
	QuestionsWithCanonicals    []QuestionCanonicals `json:"questionsWithCanonicals"`
	QuestionsWithoutCanonicals []Suggestion         `json:"questionsWithoutCanonicals"`
	TotalCanonicals            int                  `json:"totalCanonicals"`
}

// AllCanonicals returns every canonical URL in the audit, de-duplicated in
// first-seen order across questions.
func (a *Audit) AllCanonicals() []string {
	seen := make(map[string]bool)
	urls := []string{}
	for _, qc := range a.QuestionsWithCanonicals {
		for _, url := range qc.URLs {
			if seen[url] {
				continue
			}
			seen[url] = true
			urls = append(urls, url)
		}
	}
	return urls
}

// candidateFieldPattern matches property names that conventionally hold coded
// values and therefore usually deserve a canonical binding.
var candidateFieldPattern = regexp.MustCompile(`(?i)^(componentType|assetType|type|category|status)$`)

// AuditCanonicalReferences partitions every loaded question into exactly one
// of the two lists. Questions without a canonical get heuristic field
// suggestions; questions without a schema get an empty suggestion list.
func (s *Service) AuditCanonicalReferences() *Audit {
	audit := &Audit{
		QuestionsWithCanonicals:    []QuestionCanonicals{},
		QuestionsWithoutCanonicals: []Suggestion{},
	}
	for _, m := range s.registry.All() {
		id := m.Definition.ID
		urls := collectCanonicals(m.Definition.Schema)
		if len(urls) > 0 {
			audit.QuestionsWithCanonicals = append(audit.QuestionsWithCanonicals, QuestionCanonicals{QuestionID: id, URLs: urls})
			audit.TotalCanonicals += len(urls)
			continue
		}
		audit.QuestionsWithoutCanonicals = append(audit.QuestionsWithoutCanonicals, Suggestion{
			QuestionID:      id,
			CandidateFields: candidateFields(m.Definition.Schema),
		})
	}
	return audit
}

func candidateFields(root *question.Schema) []string {
	fields := []string{}
	seen := make(map[string]bool)
	var walk func(s *question.Schema)
	walk = func(s *question.Schema) {
		if s == nil {
			return
		}
		for _, name := range s.SortedPropertyNames() {
			prop := s.Properties[name]
			if isCandidate(name, prop) && !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
			walk(prop)
		}
		walk(s.Items)
	}
	walk(root)
	return fields
}

func isCandidate(name string, prop *question.Schema) bool {
	if prop == nil {
		return false
	}
	if candidateFieldPattern.MatchString(name) {
		return true
	}
	return prop.Type == "string" && len(prop.Enum) > 3
}
