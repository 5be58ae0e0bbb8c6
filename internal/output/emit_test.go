package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"dakfaq/internal/engine"
)

func TestEmitSink_RejectsBadInputs(t *testing.T) {
	if _, err := NewEmitSink(nil, "json"); err == nil {
		t.Fatalf("NewEmitSink(nil writer) want error")
	}
	var buf bytes.Buffer
	if _, err := NewEmitSink(&buf, "text"); err == nil {
		t.Fatalf("NewEmitSink(text) want error")
	}
}

func TestEmitSink_JSON(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewEmitSink(&buf, "json")
	if err != nil {
		t.Fatalf("NewEmitSink error: %v", err)
	}

	if err := sink.Write(okResponse("data-elements", "Found 4 data element definitions")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := sink.Write(Event{Type: "run.finished"}); err != nil {
		t.Fatalf("Write event error: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	var got []engine.Response
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].QuestionID != "data-elements" {
		t.Fatalf("unexpected aggregate: %+v", got)
	}
}

func TestEmitSink_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewEmitSink(&buf, "ndjson")
	if err != nil {
		t.Fatalf("NewEmitSink error: %v", err)
	}

	if err := sink.Write(Event{Type: "run.started", Questions: 1}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := sink.Write(failedResponse("asset-summary", "no asset files given")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	var e Event
	if err := json.Unmarshal([]byte(lines[1]), &e); err != nil {
		t.Fatalf("unmarshal line 1: %v", err)
	}
	if e.Type != "question.result" || e.QuestionID != "asset-summary" || e.Success {
		t.Fatalf("unexpected event: %+v", e)
	}
}
