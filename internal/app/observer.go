package app

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeAborted   Outcome = "aborted"
	OutcomeFailed    Outcome = "failed"
)

type ExecutionEvent struct {
	ExecutionID string
	Algorithm   string
	Mode        string
	Produced    int
	Delivered   int
	Duration    time.Duration
	Outcome     Outcome
	Err         error
}

type ExecutionObserver interface {
	ObserveExecution(ev ExecutionEvent)
}

type ExecutionLogger struct {
	logger *slog.Logger
}

func NewExecutionLogger(logger *slog.Logger) *ExecutionLogger {
	return &ExecutionLogger{logger: logger}
}

func (l *ExecutionLogger) ObserveExecution(ev ExecutionEvent) {
	if l == nil || l.logger == nil {
		return
	}
	attrs := []any{
		"execution_id", ev.ExecutionID,
		"algorithm", ev.Algorithm,
		"mode", ev.Mode,
		"outcome", string(ev.Outcome),
		"produced", ev.Produced,
		"delivered", ev.Delivered,
		"duration_ms", float64(ev.Duration.Microseconds()) / 1000.0,
	}
	switch ev.Outcome {
	case OutcomeFailed:
		l.logger.Error("algorithm_execution", append(attrs, "error", ev.Err)...)
	case OutcomeAborted:
		l.logger.Debug("algorithm_execution", append(attrs, "error", ev.Err)...)
	default:
		l.logger.Info("algorithm_execution", attrs...)
	}
}

// AsyncExecutionObserver hands events to next on a background goroutine
// and drops them when its buffer is full.
type AsyncExecutionObserver struct {
	next    ExecutionObserver
	events  chan ExecutionEvent
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

func NewAsyncExecutionObserver(next ExecutionObserver, buffer int) *AsyncExecutionObserver {
	if buffer <= 0 {
		buffer = 1
	}

	o := &AsyncExecutionObserver{
		next:   next,
		events: make(chan ExecutionEvent, buffer),
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for ev := range o.events {
			if o.next == nil {
				continue
			}
			o.next.ObserveExecution(ev)
		}
	}()

	return o
}

func (o *AsyncExecutionObserver) ObserveExecution(ev ExecutionEvent) {
	if o == nil {
		return
	}
	o.mu.RLock()
	if o.closed {
		o.mu.RUnlock()
		o.dropped.Add(1)
		return
	}
	select {
	case o.events <- ev:
	default:
		o.dropped.Add(1)
	}
	o.mu.RUnlock()
}

func (o *AsyncExecutionObserver) Dropped() uint64 {
	if o == nil {
		return 0
	}
	return o.dropped.Load()
}

// Close drains queued events and stops the worker. Later events are
// counted as dropped.
func (o *AsyncExecutionObserver) Close() {
	if o == nil {
		return
	}
	o.once.Do(func() {
		o.mu.Lock()
		o.closed = true
		close(o.events)
		o.mu.Unlock()
		o.wg.Wait()
	})
}
