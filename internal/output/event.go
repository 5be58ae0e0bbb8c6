package output

import "dakfaq/internal/engine"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - question.result
// - run.finished
//
// JSON mode remains an aggregate of engine.Response values.
type Event struct {
	Type string `json:"type"`
	*engine.Response
	Questions int `json:"questions,omitempty"`
	ExitCode  int `json:"exit_code,omitempty"`
}

func eventFromResponse(r engine.Response) Event {
	return Event{Type: "question.result", Response: &r}
}
