package dp

import (
	"fmt"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// MaxFibonacci is the largest n whose value fits in an int64.
const MaxFibonacci = 92

// Fibonacci computes F(n) top-down with memoization. The shown array holds
// the memo, with unknown entries as zero.
type Fibonacci struct {
	step.Tracker

	n     int
	memo  map[int]int
	calls int
}

func NewFibonacci() *Fibonacci { return &Fibonacci{} }

func (f *Fibonacci) Compute(n int) step.Sequence {
	return f.Sequence(func() {
		f.n = n
		f.memo = map[int]int{}
		f.calls = 0

		f.Emit(step.OpInit, fmt.Sprintf("Computing Fibonacci(%d) using memoization", n),
			f.state(),
			step.Meta(f.meta(step.Metadata{"n": n})),
		)

		result := f.fib(n)

		f.Emit(step.OpComplete, fmt.Sprintf("Fibonacci(%d) = %d", n, result),
			f.state(),
			step.Highlights(step.Indices(step.ColorSorted, n)),
			step.Meta(f.meta(step.Metadata{"n": n, "result": result})),
		)
	})
}

func (f *Fibonacci) fib(n int) int {
	f.calls++

	if v, ok := f.memo[n]; ok {
		f.Emit("memo_hit", fmt.Sprintf("Memo hit: F(%d) = %d", n, v),
			f.state(),
			step.Highlights(step.Indices(step.ColorSorted, n)),
			step.Meta(f.meta(step.Metadata{"n": n, "value": v})),
			step.Source("fibonacci.memo_hit"),
		)
		return v
	}

	if n <= 1 {
		f.memo[n] = n
		f.Emit("base_case", fmt.Sprintf("Base case: F(%d) = %d", n, n),
			f.state(),
			step.Highlights(step.Indices(step.ColorActive, n)),
			step.Meta(f.meta(step.Metadata{"n": n})),
		)
		return n
	}

	f.Emit("compute", fmt.Sprintf("Computing F(%d) = F(%d) + F(%d)", n, n-1, n-2),
		f.state(),
		step.Highlights(step.Indices(step.ColorComparing, n)),
		step.Meta(f.meta(step.Metadata{"n": n})),
	)

	v := f.fib(n-1) + f.fib(n-2)
	f.memo[n] = v

	f.Emit("memoize", fmt.Sprintf("Memoized: F(%d) = %d", n, v),
		f.state(),
		step.Highlights(step.Indices(step.ColorSorted, n)),
		step.Meta(f.meta(step.Metadata{"n": n, "value": v})),
	)
	return v
}

func (f *Fibonacci) state() step.State {
	values := make([]int, f.n+1)
	for i := range values {
		values[i] = f.memo[i]
	}
	return step.ArrayState(values)
}

func (f *Fibonacci) meta(extra step.Metadata) step.Metadata {
	m := step.Metadata{"calls": f.calls, "memo_size": len(f.memo)}
	for k, v := range extra {
		m[k] = v
	}
	return m
}
