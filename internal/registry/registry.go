package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// Registry is the catalog of executable algorithms. It is immutable once
// New returns, so lookups from concurrent requests need no locking.
type Registry struct {
	order   []string
	entries map[string]Entry
}

// New builds a registry from entries in order. Duplicate ids are rejected
// rather than resolved silently.
func New(entries ...Entry) (*Registry, error) {
	r := &Registry{
		order:   make([]string, 0, len(entries)),
		entries: make(map[string]Entry, len(entries)),
	}

	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, err
		}
		if _, exists := r.entries[e.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAlgorithm, e.ID)
		}
		r.entries[e.ID] = e
		r.order = append(r.order, e.ID)
	}

	return r, nil
}

func validateEntry(e Entry) error {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidEntry)
	case strings.TrimSpace(e.Name) == "":
		return fmt.Errorf("%w: %s: empty name", ErrInvalidEntry, e.ID)
	case e.Category == "":
		return fmt.Errorf("%w: %s: empty category", ErrInvalidEntry, e.ID)
	case !e.VisualizerType.Valid():
		return fmt.Errorf("%w: %s: unknown visualizer type %q", ErrInvalidEntry, e.ID, e.VisualizerType)
	case e.Family == "":
		return fmt.Errorf("%w: %s: empty family", ErrInvalidEntry, e.ID)
	case e.Bind == nil:
		return fmt.Errorf("%w: %s: nil binder", ErrInvalidEntry, e.ID)
	}
	return nil
}

// List returns the catalog in registration order.
func (r *Registry) List() []Metadata {
	out := make([]Metadata, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].Metadata)
	}
	return out
}

// Get looks up one algorithm. A missing id is a normal result, not an error.
func (r *Registry) Get(id string) (Metadata, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Metadata{}, false
	}
	return e.Metadata, true
}

// Family returns the family tag an algorithm was registered with.
func (r *Registry) Family(id string) (string, bool) {
	e, ok := r.entries[id]
	if !ok {
		return "", false
	}
	return e.Family, true
}

// Resolve normalizes input for id and returns the lazy step sequence of a
// fresh instance. Nothing runs until the sequence is consumed.
func (r *Registry) Resolve(id string, input json.RawMessage) (step.Sequence, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
	}

	seq, err := e.Bind(input)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, id, err)
	}
	return seq, nil
}

// Execute resolves id, drives the sequence to completion and returns
// every step produced.
func (r *Registry) Execute(id string, input json.RawMessage) ([]step.Step, error) {
	seq, err := r.Resolve(id, input)
	if err != nil {
		return nil, err
	}
	return Drain(seq)
}

// Source returns the implementation source of id.
func (r *Registry) Source(id string) (string, error) {
	e, ok := r.entries[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
	}
	if e.Source == nil {
		return "", fmt.Errorf("%w: %s", ErrSourceUnavailable, id)
	}
	src, err := e.Source()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, id, err)
	}
	return src, nil
}

// Drain consumes seq. A panic raised by the algorithm is returned as an
// ErrExecutionFault instead of a truncated result.
func Drain(seq step.Sequence) (steps []step.Step, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			steps = nil
			err = Fault(rec)
		}
	}()
	return step.Collect(seq), nil
}

// Fault converts a recovered panic value into an ErrExecutionFault.
func Fault(rec any) error {
	if e, ok := rec.(error); ok {
		return fmt.Errorf("%w: %w", ErrExecutionFault, e)
	}
	return fmt.Errorf("%w: %v", ErrExecutionFault, rec)
}
