// Package sse writes server-sent events.
package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	EventStep  = "step"
	EventDone  = "done"
	EventError = "error"
)

func SetHeaders(h http.Header) {
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
}

type Writer struct {
	w       io.Writer
	flusher http.Flusher
}

// NewWriter wraps w. Each event is flushed when w is an http.Flusher.
func NewWriter(w io.Writer) *Writer {
	f, _ := w.(http.Flusher)
	return &Writer{w: w, flusher: f}
}

// Event writes one event whose data line is the JSON encoding of data.
func (s *Writer) Event(name string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: encode %s event: %w", name, err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, b); err != nil {
		return err
	}
	s.Flush()
	return nil
}

func (s *Writer) Flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
