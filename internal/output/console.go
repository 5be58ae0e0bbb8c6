package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"dakfaq/internal/engine"
)

type ConsoleSink struct {
	writer          io.Writer
	format          string // "text", "json", "ndjson"
	mu              sync.Mutex
	responses       []engine.Response // For JSON array output
	allowedOutcomes map[string]bool
}

func NewConsoleSink(w io.Writer, format string, filterOutcomes []string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}

	if len(filterOutcomes) > 0 {
		s.allowedOutcomes = make(map[string]bool)
		for _, o := range filterOutcomes {
			// Normalize for case-insensitive comparison; outcomes are
			// "success" and "failure".
			s.allowedOutcomes[strings.ToLower(o)] = true
		}
	}

	return s
}

func outcome(r engine.Response) string {
	if r.Success {
		return "success"
	}
	return "failure"
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	printf := func(format string, args ...any) error {
		_, err := fmt.Fprintf(s.writer, format, args...)
		return err
	}
	println := func(args ...any) error {
		_, err := fmt.Fprintln(s.writer, args...)
		return err
	}

	// Apply filtering if configured
	if len(s.allowedOutcomes) > 0 {
		if r, ok := v.(engine.Response); ok {
			if !s.allowedOutcomes[outcome(r)] {
				return nil
			}
		}
	}

	switch s.format {
	case "json":
		r, ok := v.(engine.Response)
		if !ok {
			// Ignore non-response events in JSON console mode.
			return nil
		}
		s.responses = append(s.responses, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case engine.Response:
			e := eventFromResponse(t)
			if err := encoder.Encode(e); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		r, ok := v.(engine.Response)
		if !ok {
			// Ignore events in text mode.
			return nil
		}
		status := "OK"
		if !r.Success {
			status = "FAIL"
		}
		if err := printf("[%s] %s", status, r.QuestionID); err != nil {
			return err
		}
		if r.Result != nil && r.Result.Narrative != "" {
			if err := printf(" - %s", r.Result.Narrative); err != nil {
				return err
			}
		} else if r.Error != "" {
			if err := printf(" - %s", r.Error); err != nil {
				return err
			}
		}
		if err := println(); err != nil {
			return err
		}
		for _, d := range r.Details {
			if err := printf("  - %s\n", d); err != nil {
				return err
			}
		}
		return flushIfPossible(s.writer)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.responses); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
