package step

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

var (
	// ErrNotReset is raised when Emit is called on a tracker that has not
	// been reset since its last run.
	ErrNotReset = errors.New("step: tracker used without reset")
	// ErrInvalidStep is raised when Emit is handed a malformed step.
	ErrInvalidStep = errors.New("step: invalid step")
)

// errStopped unwinds an algorithm body once its consumer has gone away.
var errStopped = errors.New("step: consumer stopped")

// Sequence is the lazily produced, ordered run of steps of one execution.
type Sequence = iter.Seq[Step]

// Tracker numbers and accumulates the steps of one execution. An algorithm
// embeds it and calls Emit; a Tracker must not be shared by concurrent
// executions.
type Tracker struct {
	count int
	steps []Step
	armed bool
	yield func(Step) bool
}

// Reset zeroes the counter, drops accumulated steps and arms the tracker
// for a fresh execution.
func (t *Tracker) Reset() {
	t.count = 0
	t.steps = nil
	t.armed = true
}

// Steps returns everything emitted since the last Reset.
func (t *Tracker) Steps() []Step {
	return slices.Clone(t.steps)
}

type emission struct {
	highlights []Highlight
	meta       Metadata
	source     string
}

type EmitOption func(*emission)

func Highlights(h ...Highlight) EmitOption {
	return func(e *emission) {
		e.highlights = append(e.highlights, h...)
	}
}

func Meta(m Metadata) EmitOption {
	return func(e *emission) {
		if e.meta == nil {
			e.meta = make(Metadata, len(m))
		}
		maps.Copy(e.meta, m)
	}
}

// Source tags the step with the location in the algorithm that produced
// it, for code highlighting in a client.
func Source(tag string) EmitOption {
	return func(e *emission) {
		e.source = tag
	}
}

// Emit builds the next step, records it and hands it to the active
// consumer. It panics with ErrNotReset or ErrInvalidStep on misuse; those
// are algorithm bugs and surface as execution faults.
func (t *Tracker) Emit(operation, description string, state State, opts ...EmitOption) Step {
	if !t.armed {
		panic(ErrNotReset)
	}

	var e emission
	for _, opt := range opts {
		opt(&e)
	}

	highlights := make([]Highlight, 0, len(e.highlights))
	for _, h := range e.highlights {
		highlights = append(highlights, normalizeHighlight(h))
	}

	meta := make(Metadata, len(e.meta)+1)
	maps.Copy(meta, e.meta)
	if e.source != "" {
		meta[MetaSource] = e.source
	}

	s := Step{
		StepNumber:  t.count + 1,
		Operation:   operation,
		Description: description,
		State:       state,
		Highlights:  highlights,
		Metadata:    meta,
	}
	if err := Validate(s); err != nil {
		panic(fmt.Errorf("%w: %v", ErrInvalidStep, err))
	}

	t.count++
	t.steps = append(t.steps, s)

	if t.yield != nil && !t.yield(s) {
		t.yield = nil
		panic(errStopped)
	}
	return s
}

// Sequence wraps body as a lazy Sequence. Each iteration resets the
// tracker, runs body and forwards every Emit to the consumer as it
// happens. When the consumer stops early body is unwound at its next Emit.
func (t *Tracker) Sequence(body func()) Sequence {
	return func(yield func(Step) bool) {
		t.Reset()
		t.yield = yield
		defer func() {
			t.yield = nil
			t.armed = false
			if r := recover(); r != nil && r != errStopped {
				panic(r)
			}
		}()
		body()
	}
}
