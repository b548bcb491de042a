package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/registry"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/stepfilter"
)

// counter emits init, one "tick" per unit of n and complete.
type counter struct {
	step.Tracker
	produced atomic.Int32
}

func (c *counter) Run(n int) step.Sequence {
	return c.Sequence(func() {
		c.Emit(step.OpInit, "start", step.ArrayState([]int{0}))
		c.produced.Add(1)
		for i := 1; i <= n; i++ {
			c.Emit("tick", fmt.Sprintf("tick %d", i), step.ArrayState([]int{i}),
				step.Meta(step.Metadata{"i": i}))
			c.produced.Add(1)
		}
		c.Emit(step.OpComplete, "done", step.ArrayState([]int{n}))
		c.produced.Add(1)
	})
}

type fakeCatalog struct {
	last *counter
}

func (f *fakeCatalog) List() []registry.Metadata {
	return []registry.Metadata{{ID: "counter", Name: "Counter", Category: registry.CategorySorting, VisualizerType: step.Array}}
}

func (f *fakeCatalog) Get(id string) (registry.Metadata, bool) {
	if id != "counter" && id != "broken" {
		return registry.Metadata{}, false
	}
	return registry.Metadata{ID: id}, true
}

func (f *fakeCatalog) Resolve(id string, input json.RawMessage) (step.Sequence, error) {
	switch id {
	case "counter":
		var n int
		if err := json.Unmarshal(input, &n); err != nil {
			return nil, fmt.Errorf("%w: %v", registry.ErrInvalidInput, err)
		}
		f.last = &counter{}
		return f.last.Run(n), nil
	case "broken":
		return func(yield func(step.Step) bool) {
			panic("index out of range")
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", registry.ErrUnknownAlgorithm, id)
}

func (f *fakeCatalog) Source(id string) (string, error) {
	if id != "counter" {
		return "", fmt.Errorf("%w: %s", registry.ErrUnknownAlgorithm, id)
	}
	return "package counter", nil
}

type spyFilterCache struct {
	computes int
	items    map[string]*stepfilter.Filter
}

func (c *spyFilterCache) GetOrCompute(key string, fn func() (*stepfilter.Filter, error)) (*stepfilter.Filter, error) {
	if f, ok := c.items[key]; ok {
		return f, nil
	}
	c.computes++
	f, err := fn()
	if err != nil {
		return nil, err
	}
	if c.items == nil {
		c.items = map[string]*stepfilter.Filter{}
	}
	c.items[key] = f
	return f, nil
}

type recordingObserver struct {
	events []ExecutionEvent
}

func (r *recordingObserver) ObserveExecution(ev ExecutionEvent) {
	r.events = append(r.events, ev)
}

func newTestService(opts Options) (*Service, *fakeCatalog) {
	cat := &fakeCatalog{}
	if opts.NewID == nil {
		opts.NewID = func() string { return "exec-1" }
	}
	return NewService(cat, opts), cat
}

func TestServiceExecuteReturnsAllSteps(t *testing.T) {
	obs := &recordingObserver{}
	svc, _ := newTestService(Options{Observer: obs})

	ex, err := svc.Execute(context.Background(), "counter", json.RawMessage(`3`), ExecuteOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.ID != "exec-1" || ex.Algorithm != "counter" {
		t.Fatalf("unexpected header: %+v", ex)
	}
	if ex.Count != 5 || ex.Total != 5 || len(ex.Steps) != 5 {
		t.Fatalf("expected 5 steps, got count=%d total=%d len=%d", ex.Count, ex.Total, len(ex.Steps))
	}
	for i, st := range ex.Steps {
		if st.StepNumber != i+1 {
			t.Fatalf("step %d numbered %d", i, st.StepNumber)
		}
	}
	if ex.Steps[len(ex.Steps)-1].Operation != step.OpComplete {
		t.Fatalf("expected complete last, got %s", ex.Steps[len(ex.Steps)-1].Operation)
	}

	if len(obs.events) != 1 {
		t.Fatalf("expected 1 observed event, got %d", len(obs.events))
	}
	ev := obs.events[0]
	if ev.Outcome != OutcomeCompleted || ev.Mode != ModeBatch || ev.Produced != 5 || ev.Delivered != 5 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestServiceExecuteFilterKeepsNumbering(t *testing.T) {
	cache := &spyFilterCache{}
	svc, _ := newTestService(Options{Filters: cache})

	for range 2 {
		ex, err := svc.Execute(context.Background(), "counter", json.RawMessage(`4`), ExecuteOptions{Filter: `operation == "tick" && metadata.i % 2 == 0`})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ex.Count != 2 || ex.Total != 6 {
			t.Fatalf("expected 2 of 6 steps, got %d of %d", ex.Count, ex.Total)
		}
		if ex.Steps[0].StepNumber != 3 || ex.Steps[1].StepNumber != 5 {
			t.Fatalf("unexpected step numbers %d, %d", ex.Steps[0].StepNumber, ex.Steps[1].StepNumber)
		}
	}
	if cache.computes != 1 {
		t.Fatalf("expected filter compiled once, got %d", cache.computes)
	}
}

func TestServiceExecuteErrors(t *testing.T) {
	svc, _ := newTestService(Options{MaxSteps: 10})

	cases := []struct {
		name   string
		id     string
		input  string
		filter string
		want   error
	}{
		{name: "unknown algorithm", id: "nope", input: `1`, want: registry.ErrUnknownAlgorithm},
		{name: "invalid input", id: "counter", input: `"x"`, want: registry.ErrInvalidInput},
		{name: "invalid filter", id: "counter", input: `1`, filter: `os.Exit(1)`, want: stepfilter.ErrInvalidFilter},
		{name: "budget", id: "counter", input: `50`, want: ErrStepBudgetExceeded},
		{name: "fault", id: "broken", input: `1`, want: registry.ErrExecutionFault},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ex, err := svc.Execute(context.Background(), tc.id, json.RawMessage(tc.input), ExecuteOptions{Filter: tc.filter})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if ex != nil {
				t.Fatalf("expected nil execution on error")
			}
		})
	}
}

func TestServiceExecuteBudgetStopsProducer(t *testing.T) {
	svc, cat := newTestService(Options{MaxSteps: 10})

	_, err := svc.Execute(context.Background(), "counter", json.RawMessage(`1000`), ExecuteOptions{})
	if !errors.Is(err, ErrStepBudgetExceeded) {
		t.Fatalf("expected budget error, got %v", err)
	}
	if got := cat.last.produced.Load(); got > 11 {
		t.Fatalf("producer kept running after budget: %d steps", got)
	}
}

func TestServiceExecuteSnapshotBudget(t *testing.T) {
	// Every counter step holds two cells: its kind and one value.
	svc, cat := newTestService(Options{MaxSnapshotCells: 7})

	_, err := svc.Execute(context.Background(), "counter", json.RawMessage(`1000`), ExecuteOptions{})
	if !errors.Is(err, ErrStepBudgetExceeded) {
		t.Fatalf("expected budget error, got %v", err)
	}
	if got := cat.last.produced.Load(); got > 4 {
		t.Fatalf("producer kept running after snapshot budget: %d steps", got)
	}

	ex, err := svc.Execute(context.Background(), "counter", json.RawMessage(`2000`), ExecuteOptions{Filter: `operation == "complete"`})
	if err != nil {
		t.Fatalf("filtered steps must not count against the budget: %v", err)
	}
	if ex.Count != 1 {
		t.Fatalf("expected only the complete step, got %d", ex.Count)
	}

	res, err := svc.Stream(context.Background(), "counter", json.RawMessage(`100`), ExecuteOptions{}, func(step.Step) error { return nil })
	if err != nil || res.Delivered != 102 {
		t.Fatalf("streams retain nothing and must complete: %+v %v", res, err)
	}
}

func TestServiceExecuteIgnoresCancellation(t *testing.T) {
	obs := &recordingObserver{}
	svc, _ := newTestService(Options{Observer: obs})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex, err := svc.Execute(ctx, "counter", json.RawMessage(`3`), ExecuteOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Count != 5 {
		t.Fatalf("expected 5 steps, got %d", ex.Count)
	}
	if obs.events[0].Outcome != OutcomeCompleted {
		t.Fatalf("expected completed outcome, got %s", obs.events[0].Outcome)
	}
}

func TestServiceStreamDeliversInOrder(t *testing.T) {
	obs := &recordingObserver{}
	svc, _ := newTestService(Options{Observer: obs})

	var got []int
	res, err := svc.Stream(context.Background(), "counter", json.RawMessage(`2`), ExecuteOptions{}, func(st step.Step) error {
		got = append(got, st.StepNumber)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.State != StreamCompleted || res.Delivered != 4 || res.Total != 4 {
		t.Fatalf("unexpected result: %+v", res)
	}
	for i, n := range got {
		if n != i+1 {
			t.Fatalf("out of order delivery: %v", got)
		}
	}
	if obs.events[0].Mode != ModeStream {
		t.Fatalf("expected stream mode, got %s", obs.events[0].Mode)
	}
}

func TestServiceStreamStopsWhenConsumerFails(t *testing.T) {
	obs := &recordingObserver{}
	svc, cat := newTestService(Options{Observer: obs})
	broken := errors.New("broken pipe")

	res, err := svc.Stream(context.Background(), "counter", json.RawMessage(`100`), ExecuteOptions{}, func(st step.Step) error {
		if st.StepNumber == 3 {
			return broken
		}
		return nil
	})
	if !errors.Is(err, ErrStreamAborted) || !errors.Is(err, broken) {
		t.Fatalf("expected aborted wrapping cause, got %v", err)
	}
	if res.State != StreamAborted || res.Delivered != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := cat.last.produced.Load(); got != 2 {
		t.Fatalf("producer ran past the failed step: %d", got)
	}
	if obs.events[0].Outcome != OutcomeAborted {
		t.Fatalf("expected aborted outcome, got %s", obs.events[0].Outcome)
	}
}

func TestServiceStreamStopsOnCancel(t *testing.T) {
	svc, cat := newTestService(Options{})
	ctx, cancel := context.WithCancel(context.Background())

	res, err := svc.Stream(ctx, "counter", json.RawMessage(`100`), ExecuteOptions{}, func(st step.Step) error {
		if st.StepNumber == 5 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, ErrStreamAborted) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled abort, got %v", err)
	}
	if res.State != StreamAborted || res.Delivered != 5 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := cat.last.produced.Load(); got > 6 {
		t.Fatalf("producer kept running after cancel: %d", got)
	}
}

func TestServiceStreamErrorBeforeFirstStepStaysIdle(t *testing.T) {
	svc, _ := newTestService(Options{})

	res, err := svc.Stream(context.Background(), "nope", json.RawMessage(`1`), ExecuteOptions{}, func(step.Step) error {
		t.Fatal("emit must not be called")
		return nil
	})
	if !errors.Is(err, registry.ErrUnknownAlgorithm) {
		t.Fatalf("expected unknown algorithm, got %v", err)
	}
	if res.State != StreamIdle {
		t.Fatalf("expected idle, got %s", res.State)
	}
}

func TestServiceGetAndSource(t *testing.T) {
	svc, _ := newTestService(Options{})

	if _, err := svc.Get("nope"); !errors.Is(err, registry.ErrUnknownAlgorithm) {
		t.Fatalf("expected unknown algorithm, got %v", err)
	}
	md, err := svc.Get("counter")
	if err != nil || md.ID != "counter" {
		t.Fatalf("unexpected get: %+v, %v", md, err)
	}
	src, err := svc.Source("counter")
	if err != nil || src != "package counter" {
		t.Fatalf("unexpected source: %q, %v", src, err)
	}
	if len(svc.List()) != 1 {
		t.Fatalf("expected 1 listed algorithm")
	}
}

func TestNewServiceGeneratesExecutionIDs(t *testing.T) {
	svc := NewService(&fakeCatalog{}, Options{})

	a, err := svc.Execute(context.Background(), "counter", json.RawMessage(`0`), ExecuteOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := svc.Execute(context.Background(), "counter", json.RawMessage(`0`), ExecuteOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct execution ids, got %q and %q", a.ID, b.ID)
	}
}
