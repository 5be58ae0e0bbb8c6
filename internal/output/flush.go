package output

import "io"

// flusher is satisfied by buffered writers such as bufio.Writer.
type flusher interface {
	Flush() error
}

// flushIfPossible pushes buffered bytes through after each streamed line so
// NDJSON consumers see events as they happen, not at Close.
func flushIfPossible(w io.Writer) error {
	f, ok := w.(flusher)
	if !ok {
		return nil
	}
	return f.Flush()
}
