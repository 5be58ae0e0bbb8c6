package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"dakfaq/internal/engine"
)

// ReportSink aggregates execution responses and writes a Markdown report on
// Close. Levels label the report sections; the map goes from question ID to
// its level name and may be nil.
type ReportSink struct {
	path      string
	file      *os.File
	levels    map[string]string
	mu        sync.Mutex
	responses []engine.Response
	summary   *engine.Summary
}

func NewReportSink(path string, levels map[string]string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{
		path:   path,
		file:   f,
		levels: levels,
	}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case engine.Response:
		s.responses = append(s.responses, t)
	case engine.Summary:
		sum := t
		s.summary = &sum
	}
	return nil
}

func (s *ReportSink) levelOf(id string) string {
	if lv, ok := s.levels[id]; ok && lv != "" {
		return lv
	}
	return "other"
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := s.summary
	if sum == nil {
		computed := engine.Summary{Total: len(s.responses)}
		for _, r := range s.responses {
			if r.Success {
				computed.Successful++
			} else {
				computed.Failed++
			}
		}
		sum = &computed
	}

	var answered, failed []engine.Response
	perLevel := make(map[string]*levelStats)
	for _, r := range s.responses {
		lv := s.levelOf(r.QuestionID)
		ls := perLevel[lv]
		if ls == nil {
			ls = &levelStats{Level: lv}
			perLevel[lv] = ls
		}
		if r.Success {
			answered = append(answered, r)
			ls.Answered++
		} else {
			failed = append(failed, r)
			ls.Failed++
		}
		if r.Result != nil {
			ls.Warnings += len(r.Result.Warnings)
		}
	}

	var b strings.Builder
	b.WriteString("# DAK FAQ Report\n\n")

	b.WriteString(fmt.Sprintf("Executed %d questions: %d answered, %d failed.\n\n",
		sum.Total, sum.Successful, sum.Failed))

	// --- Per-level summary ---
	b.WriteString("## Coverage by level\n\n")
	if len(perLevel) == 0 {
		b.WriteString("No questions executed.\n\n")
	} else {
		var levels []string
		for lv := range perLevel {
			levels = append(levels, lv)
		}
		sort.Strings(levels)

		b.WriteString("| Level | Answered | Failed | Warnings |\n")
		b.WriteString("| --- | ---: | ---: | ---: |\n")
		for _, lv := range levels {
			ls := perLevel[lv]
			b.WriteString(fmt.Sprintf("| %s | %d | %d | %d |\n", ls.Level, ls.Answered, ls.Failed, ls.Warnings))
		}
		b.WriteString("\n")
	}

	// --- Answers ---
	b.WriteString("## Answers\n\n")
	if len(answered) == 0 {
		b.WriteString("- None\n\n")
	} else {
		for _, r := range answered {
			b.WriteString(fmt.Sprintf("### %s\n\n", r.QuestionID))
			if r.Result != nil && r.Result.Narrative != "" {
				b.WriteString(r.Result.Narrative)
				b.WriteString("\n")
			} else {
				b.WriteString("_No narrative._\n")
			}
			if r.Result != nil && len(r.Result.Warnings) > 0 {
				b.WriteString("\nWarnings:\n")
				for _, w := range r.Result.Warnings {
					b.WriteString(fmt.Sprintf("- %s\n", w))
				}
			}
			b.WriteString("\n")
		}
	}

	// --- Failures ---
	b.WriteString("## Failures\n\n")
	if len(failed) == 0 {
		b.WriteString("- None\n\n")
	} else {
		for _, r := range failed {
			b.WriteString(fmt.Sprintf("- **%s**", r.QuestionID))
			if r.Error != "" {
				b.WriteString(fmt.Sprintf(": %s", r.Error))
			}
			b.WriteString("\n")
			details := r.Details
			if r.Result != nil && len(r.Result.Errors) > 0 {
				details = append(details[:len(details):len(details)], r.Result.Errors...)
			}
			for _, d := range details {
				b.WriteString(fmt.Sprintf("  - %s\n", d))
			}
		}
		b.WriteString("\n")
	}

	// --- Questions executed ---
	b.WriteString("## Questions executed\n")
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range s.responses {
		if _, ok := seen[r.QuestionID]; ok {
			continue
		}
		seen[r.QuestionID] = struct{}{}
		ids = append(ids, r.QuestionID)
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		b.WriteString("- None\n")
	} else {
		for _, id := range ids {
			b.WriteString(fmt.Sprintf("- %s\n", id))
		}
	}

	if _, err := s.file.WriteString(b.String()); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}

type levelStats struct {
	Level    string
	Answered int
	Failed   int
	Warnings int
}
