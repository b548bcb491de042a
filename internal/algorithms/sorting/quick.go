package sorting

import (
	"fmt"
	"slices"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

// Quick is quicksort with Lomuto partitioning around the last element.
type Quick struct {
	step.Tracker

	arr         []int
	comparisons int
	swaps       int
}

func NewQuick() *Quick { return &Quick{} }

func (q *Quick) Sort(values []int) step.Sequence {
	return q.Sequence(func() {
		q.arr = slices.Clone(values)
		q.comparisons, q.swaps = 0, 0
		n := len(q.arr)

		q.Emit(step.OpInit, fmt.Sprintf("Starting quick sort on array of %d elements", n),
			step.ArrayState(q.arr),
			step.Meta(q.meta(nil)),
		)

		q.quicksort(0, n-1)

		q.Emit(step.OpComplete, fmt.Sprintf("Sorting complete: %d comparisons and %d swaps", q.comparisons, q.swaps),
			step.ArrayState(q.arr),
			step.Highlights(step.Span(step.ColorSorted, 0, n)),
			step.Meta(q.meta(step.Metadata{"sorted": true})),
		)
	})
}

func (q *Quick) quicksort(low, high int) {
	if low >= high {
		return
	}
	p := q.partition(low, high)
	q.quicksort(low, p-1)
	q.quicksort(p+1, high)
}

func (q *Quick) partition(low, high int) int {
	pivot := q.arr[high]
	q.Emit("select_pivot", fmt.Sprintf("Pivot %d selected for range [%d, %d]", pivot, low, high),
		step.ArrayState(q.arr),
		step.Highlights(step.Span(step.ColorComparing, low, high), step.Indices(step.ColorActive, high)),
		step.Meta(q.meta(step.Metadata{"pivot": pivot, "low": low, "high": high})),
	)

	i := low - 1
	for j := low; j < high; j++ {
		q.comparisons++
		opts := []step.EmitOption{
			step.Highlights(step.Indices(step.ColorActive, high), step.Indices(step.ColorComparing, j)),
			step.Meta(q.meta(step.Metadata{"pivot": pivot, "i": i, "j": j})),
		}
		if i >= low {
			opts = append(opts, step.Highlights(step.Span(step.ColorSorted, low, i+1)))
		}
		q.Emit("compare", fmt.Sprintf("Comparing %d with pivot %d", q.arr[j], pivot), step.ArrayState(q.arr), opts...)

		if q.arr[j] <= pivot {
			i++
			if i != j {
				q.arr[i], q.arr[j] = q.arr[j], q.arr[i]
				q.swaps++
				q.Emit("swap", fmt.Sprintf("Swapped %d and %d", q.arr[i], q.arr[j]),
					step.ArrayState(q.arr),
					step.Highlights(step.Indices(step.ColorSwapped, i, j)),
					step.Meta(q.meta(step.Metadata{"pivot": pivot})),
				)
			}
		}
	}

	p := i + 1
	if p != high {
		q.arr[p], q.arr[high] = q.arr[high], q.arr[p]
		q.swaps++
	}
	q.Emit("pivot_placed", fmt.Sprintf("Pivot %d placed at final position %d", pivot, p),
		step.ArrayState(q.arr),
		step.Highlights(
			step.Indices(step.ColorSorted, p),
			step.Span(step.ColorComparing, low, p),
			step.Span(step.ColorComparing, p+1, high+1),
		),
		step.Meta(q.meta(step.Metadata{"pivot": pivot, "pivot_index": p})),
	)
	return p
}

func (q *Quick) meta(extra step.Metadata) step.Metadata {
	m := step.Metadata{"comparisons": q.comparisons, "swaps": q.swaps}
	for k, v := range extra {
		m[k] = v
	}
	return m
}
