package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/registry"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/stepfilter"
)

const (
	ModeBatch  = "batch"
	ModeStream = "stream"
)

const (
	DefaultMaxSteps         = 100_000
	DefaultMaxSnapshotCells = 1 << 25
)

type Options struct {
	// MaxSteps bounds the steps one execution may produce.
	MaxSteps int
	// MaxSnapshotCells bounds the state cells a batch execution may hold
	// across all the steps it returns.
	MaxSnapshotCells int
	Filters  FilterCache
	Observer ExecutionObserver
	Tracer   trace.Tracer
	Logger   *slog.Logger
	NewID    func() string
}

type ExecuteOptions struct {
	// Filter is an optional boolean expression over each step; steps it
	// rejects are not returned but keep their place in the numbering.
	Filter string
}

type Execution struct {
	ID        string      `json:"execution_id"`
	Algorithm string      `json:"algorithm"`
	Steps     []step.Step `json:"steps"`
	Count     int         `json:"count"`
	Total     int         `json:"total"`
}

type StreamState string

const (
	StreamIdle      StreamState = "idle"
	StreamRunning   StreamState = "running"
	StreamCompleted StreamState = "completed"
	StreamAborted   StreamState = "aborted"
)

type StreamResult struct {
	ID        string      `json:"execution_id"`
	Algorithm string      `json:"algorithm"`
	State     StreamState `json:"state"`
	Delivered int         `json:"count"`
	Total     int         `json:"total"`
}

type Service struct {
	catalog  Catalog
	filters  FilterCache
	observer ExecutionObserver
	tracer   trace.Tracer
	logger   *slog.Logger
	maxSteps int
	maxCells int
	newID    func() string
}

func NewService(catalog Catalog, opts Options) *Service {
	s := &Service{
		catalog:  catalog,
		filters:  opts.Filters,
		observer: opts.Observer,
		tracer:   opts.Tracer,
		logger:   opts.Logger,
		maxSteps: opts.MaxSteps,
		maxCells: opts.MaxSnapshotCells,
		newID:    opts.NewID,
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("github.com/awmpietro/golang-algorithm-visualizer/internal/app")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.maxSteps <= 0 {
		s.maxSteps = DefaultMaxSteps
	}
	if s.maxCells <= 0 {
		s.maxCells = DefaultMaxSnapshotCells
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

func (s *Service) List() []registry.Metadata {
	return s.catalog.List()
}

func (s *Service) Get(id string) (registry.Metadata, error) {
	md, ok := s.catalog.Get(id)
	if !ok {
		return registry.Metadata{}, fmt.Errorf("%w: %s", registry.ErrUnknownAlgorithm, id)
	}
	return md, nil
}

func (s *Service) Source(id string) (string, error) {
	return s.catalog.Source(id)
}

// Execute runs id to completion and returns every step that passes the
// filter. Cancelling ctx does not stop a batch run; the step and snapshot
// budgets bound it instead.
func (s *Service) Execute(ctx context.Context, id string, input json.RawMessage, opts ExecuteOptions) (*Execution, error) {
	ex := &Execution{ID: s.newID(), Algorithm: id, Steps: []step.Step{}}

	ctx, span := s.startSpan(ctx, ex.ID, id, ModeBatch)
	defer span.End()
	started := time.Now()

	retained := 0
	total, err := s.run(context.WithoutCancel(ctx), id, input, opts, func(st step.Step) error {
		retained += st.State.Cells()
		if retained > s.maxCells {
			return fmt.Errorf("%w: %s holds more than %d state cells", ErrStepBudgetExceeded, id, s.maxCells)
		}
		ex.Steps = append(ex.Steps, st)
		return nil
	})
	ex.Total = total
	ex.Count = len(ex.Steps)

	s.finish(span, ExecutionEvent{
		ExecutionID: ex.ID,
		Algorithm:   id,
		Mode:        ModeBatch,
		Produced:    total,
		Delivered:   ex.Count,
		Duration:    time.Since(started),
	}, err)
	if err != nil {
		return nil, err
	}
	return ex, nil
}

// Stream runs id and hands each step that passes the filter to emit as it
// is produced. The run stops as soon as ctx is done or emit fails; the
// algorithm does no further work in that case.
//
// A stream moves idle -> running -> completed, or to aborted on consumer
// loss, a fault or an exceeded budget. Errors raised before the first
// step (unknown id, bad input, bad filter) leave it idle.
func (s *Service) Stream(ctx context.Context, id string, input json.RawMessage, opts ExecuteOptions, emit func(step.Step) error) (*StreamResult, error) {
	res := &StreamResult{ID: s.newID(), Algorithm: id, State: StreamIdle}

	ctx, span := s.startSpan(ctx, res.ID, id, ModeStream)
	defer span.End()
	started := time.Now()

	total, err := s.run(ctx, id, input, opts, func(st step.Step) error {
		res.State = StreamRunning
		if err := emit(st); err != nil {
			return fmt.Errorf("%w: %w", ErrStreamAborted, err)
		}
		res.Delivered++
		return nil
	})
	res.Total = total

	switch {
	case err == nil:
		res.State = StreamCompleted
	case res.State == StreamRunning || total > 0:
		res.State = StreamAborted
	}

	s.finish(span, ExecutionEvent{
		ExecutionID: res.ID,
		Algorithm:   id,
		Mode:        ModeStream,
		Produced:    total,
		Delivered:   res.Delivered,
		Duration:    time.Since(started),
	}, err)
	return res, err
}

// run resolves id, drives its sequence and calls visit for every step the
// filter keeps. It returns how many steps the algorithm produced.
func (s *Service) run(ctx context.Context, id string, input json.RawMessage, opts ExecuteOptions, visit func(step.Step) error) (total int, err error) {
	filter, err := s.compileFilter(opts.Filter)
	if err != nil {
		return 0, err
	}

	seq, err := s.catalog.Resolve(id, input)
	if err != nil {
		return 0, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = registry.Fault(rec)
		}
	}()

	for st := range seq {
		total++
		if total > s.maxSteps {
			return total, fmt.Errorf("%w: %s produced more than %d steps", ErrStepBudgetExceeded, id, s.maxSteps)
		}
		if cerr := ctx.Err(); cerr != nil {
			return total, fmt.Errorf("%w: %w", ErrStreamAborted, cerr)
		}
		if filter != nil && !filter.Match(st) {
			continue
		}
		if err := visit(st); err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *Service) compileFilter(src string) (*stepfilter.Filter, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}
	if s.filters == nil {
		return stepfilter.Compile(src)
	}
	return s.filters.GetOrCompute(src, func() (*stepfilter.Filter, error) {
		return stepfilter.Compile(src)
	})
}

func (s *Service) startSpan(ctx context.Context, executionID, id, mode string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "algorithm.execute", trace.WithAttributes(
		attribute.String("algorithm.id", id),
		attribute.String("execution.id", executionID),
		attribute.String("execution.mode", mode),
	))
}

func (s *Service) finish(span trace.Span, ev ExecutionEvent, err error) {
	ev.Err = err
	switch {
	case err == nil:
		ev.Outcome = OutcomeCompleted
	case errors.Is(err, ErrStreamAborted):
		ev.Outcome = OutcomeAborted
	default:
		ev.Outcome = OutcomeFailed
	}

	span.SetAttributes(
		attribute.Int("execution.steps_produced", ev.Produced),
		attribute.Int("execution.steps_delivered", ev.Delivered),
		attribute.String("execution.outcome", string(ev.Outcome)),
	)
	if err != nil && ev.Outcome != OutcomeAborted {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if errors.Is(err, registry.ErrExecutionFault) {
		s.logger.Error("algorithm fault", "algorithm", ev.Algorithm, "execution_id", ev.ExecutionID, "error", err)
	}
	if ev.Outcome == OutcomeAborted {
		s.logger.Debug("stream aborted", "algorithm", ev.Algorithm, "execution_id", ev.ExecutionID, "delivered", ev.Delivered)
	}

	if s.observer != nil {
		s.observer.ObserveExecution(ev)
	}
}
