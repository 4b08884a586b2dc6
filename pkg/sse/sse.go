package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Event is the tagged payload carried by one server-sent event. Exactly one
// of the fields is set; the zero value is not a valid event.
type Event struct {
	Content   string `json:"content,omitempty"`
	Emergency bool   `json:"emergency,omitempty"`
	Done      bool   `json:"done,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Content wraps one incremental text fragment. The fragment must be
// non-empty: an empty string encodes indistinguishably from the zero Event,
// so producers filter empty fragments before reaching this type.
func Content(fragment string) Event {
	return Event{Content: fragment}
}

// Emergency signals that the response text has matched a detection phrase.
func Emergency() Event {
	return Event{Emergency: true}
}

// Done terminates a successfully completed stream.
func Done() Event {
	return Event{Done: true}
}

// Error terminates a stream that failed after it had already started.
func Error(message string) Event {
	return Event{Error: message}
}

// Encode serialises an event as a self-delimited SSE block:
// "data: <json>\n\n". The blank line is the event delimiter, so receivers
// can demarcate events without a length prefix.
func Encode(ev Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stream event: %w", err)
	}
	return []byte(fmt.Sprintf("data: %s\n\n", payload)), nil
}

// Writer writes encoded events to an HTTP response, flushing after each one
// so no fragment sits in a buffer while the client waits.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

// NewWriter wraps a response writer for event streaming. It fails when the
// underlying writer cannot flush incrementally.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}
	return &Writer{w: w, flusher: flusher}, nil
}

// WriteEvent emits one event and flushes it. Stream headers are committed on
// the first call, so a handler that never writes can still fall back to a
// plain status-code response.
func (sw *Writer) WriteEvent(ev Event) error {
	if !sw.started {
		header := sw.w.Header()
		header.Set("Content-Type", "text/event-stream")
		header.Set("Cache-Control", "no-cache")
		header.Set("Connection", "keep-alive")
		sw.started = true
	}

	block, err := Encode(ev)
	if err != nil {
		return err
	}
	if _, err := sw.w.Write(block); err != nil {
		return err
	}
	sw.flusher.Flush()
	return nil
}

// Started reports whether any event has been written. Once true, the
// response headers are committed and errors can only be delivered in-band.
func (sw *Writer) Started() bool {
	return sw.started
}
